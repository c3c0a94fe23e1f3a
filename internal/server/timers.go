package server

import (
	"context"
	"errors"
	"time"

	"punchline/internal/game"

	"github.com/coder/quartz"
)

var errRoundMoved = errors.New("round moved on")

const timerUpdateTimeout = 10 * time.Second

// scheduleChooseTimer closes submissions for the given round once the choose
// window elapses. A zero window leaves the host in charge.
func (s *Server) scheduleChooseTimer(code string, roundNumber int) {
	duration := s.cfg.ChooseDuration()
	if duration <= 0 {
		return
	}
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if existing, ok := s.timers[code]; ok {
		existing.Stop()
	}
	var timer *quartz.Timer
	timer = s.clock.AfterFunc(duration, func() {
		s.timersMu.Lock()
		if s.timers[code] == timer {
			delete(s.timers, code)
		}
		s.timersMu.Unlock()
		s.closeSubmissions(code, roundNumber)
	}, "choose", code)
	s.timers[code] = timer
}

func (s *Server) cancelChooseTimer(code string) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if timer, ok := s.timers[code]; ok {
		timer.Stop()
		delete(s.timers, code)
	}
}

// closeSubmissions moves a round to HOST_CHOOSES on the host's behalf, unless
// someone already moved it.
func (s *Server) closeSubmissions(code string, roundNumber int) {
	ctx, cancel := context.WithTimeout(context.Background(), timerUpdateTimeout)
	defer cancel()
	g, err := s.update(ctx, code, func(g *game.Game) error {
		round := g.ActiveRound()
		if len(g.Rounds) != roundNumber || round == nil || round.State != game.RoundPlayersChoose {
			return errRoundMoved
		}
		_, err := g.BeginHostChooses(round.Host)
		return err
	})
	if errors.Is(err, errRoundMoved) {
		return
	}
	if err != nil {
		s.logger.Error("auto close submissions failed", "game_code", code, "round", roundNumber, "err", err)
		return
	}
	s.logger.Info("round closed for punchlines", "game_code", code, "round", roundNumber, "reason", "timer")
	payload := roundPayload(g)
	payload.Reason = "timer"
	s.recordEvent(ctx, g, eventRoundHostChooses, "", payload)
	s.broadcastGameUpdate(g, eventRoundHostChooses)
}
