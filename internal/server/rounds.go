package server

import (
	"context"

	"punchline/internal/game"
)

// StartGame deals hands and opens the first round with the requester as host.
func (s *Server) StartGame(ctx context.Context, code, requesterID string) error {
	g, err := s.update(ctx, code, func(g *game.Game) error {
		return g.Start(s.rng, requesterID)
	})
	if err != nil {
		s.logFailure("start game", code, err)
		return err
	}
	s.logger.Info("game started", "game_code", code, "host", g.Host, "players", len(g.Players))
	s.recordEvent(ctx, g, eventGameStarted, requesterID, roundPayload(g))
	s.announceRound(ctx, g, eventRoundStarted)
	return nil
}

func (s *Server) EnterPlayersChooseState(ctx context.Context, code, requesterID string) error {
	g, err := s.update(ctx, code, func(g *game.Game) error {
		return g.BeginPlayersChoose(requesterID)
	})
	if err != nil {
		s.logFailure("enter players choose", code, err)
		return err
	}
	s.logger.Info("round open for punchlines", "game_code", code, "round", len(g.Rounds))
	s.recordEvent(ctx, g, eventRoundPlayersChoose, requesterID, roundPayload(g))
	s.broadcastGameUpdate(g, eventRoundPlayersChoose)
	s.scheduleChooseTimer(code, len(g.Rounds))
	return nil
}

// PlayerChoosePunchlines submits a player's punchlines for the active round.
func (s *Server) PlayerChoosePunchlines(ctx context.Context, code, playerID string, punchlines []string) error {
	g, err := s.update(ctx, code, func(g *game.Game) error {
		return g.ChoosePunchlines(playerID, punchlines)
	})
	if err != nil {
		s.logFailure("choose punchlines", code, err, "player_id", playerID)
		return err
	}
	player, err := s.GetPlayer(ctx, code, playerID, g)
	if err != nil {
		return err
	}
	round := g.ActiveRound()
	s.logger.Info("punchlines chosen", "game_code", code, "player", player.Nickname, "submitted", len(round.Submissions))
	payload := roundPayload(g)
	payload.Punchlines = punchlines
	s.recordEvent(ctx, g, eventPunchlinesChosen, playerID, payload)
	s.broadcastGameUpdate(g, eventPunchlinesChosen)
	return nil
}

// EnterHostChoosesState closes submissions and returns them for judging.
func (s *Server) EnterHostChoosesState(ctx context.Context, code, requesterID string) ([][]string, error) {
	var punchlines [][]string
	g, err := s.update(ctx, code, func(g *game.Game) error {
		chosen, err := g.BeginHostChooses(requesterID)
		punchlines = chosen
		return err
	})
	if err != nil {
		s.logFailure("enter host chooses", code, err)
		return nil, err
	}
	s.cancelChooseTimer(code)
	s.logger.Info("round closed for punchlines", "game_code", code, "round", len(g.Rounds), "submissions", len(punchlines))
	s.recordEvent(ctx, g, eventRoundHostChooses, requesterID, roundPayload(g))
	s.broadcastGameUpdate(g, eventRoundHostChooses)
	return punchlines, nil
}

func (s *Server) ChooseWinner(ctx context.Context, code, requesterID, winningPlayerID string) (game.Winner, error) {
	var winner game.Winner
	g, err := s.update(ctx, code, func(g *game.Game) error {
		chosen, err := g.ChooseWinner(requesterID, winningPlayerID)
		winner = chosen
		return err
	})
	if err != nil {
		s.logFailure("choose winner", code, err)
		return game.Winner{}, err
	}
	s.logger.Info("round winner chosen", "game_code", code, "round", len(g.Rounds), "winner", winner.WinningPlayerID)
	payload := roundPayload(g)
	payload.Winner = winner.WinningPlayerID
	payload.Punchlines = winner.WinningPunchlines
	s.recordEvent(ctx, g, eventRoundWinner, requesterID, payload)
	s.broadcastGameUpdate(g, eventRoundWinner)
	return winner, nil
}

// NextRound hands the host seat on and deals the next round, or ends the game.
func (s *Server) NextRound(ctx context.Context, code, requesterID string) error {
	g, err := s.update(ctx, code, func(g *game.Game) error {
		return g.NextRound(s.rng, requesterID)
	})
	if err != nil {
		s.logFailure("next round", code, err)
		return err
	}
	s.announceRound(ctx, g, eventRoundStarted)
	return nil
}

// announceRound reports either the round that was just dealt or the end of
// the game.
func (s *Server) announceRound(ctx context.Context, g *game.Game, eventType string) {
	if g.Finished() {
		s.logger.Info("game finished", "game_code", g.Code, "rounds", len(g.Rounds))
		s.recordEvent(ctx, g, eventGameFinished, "", EventPayload{RoundNumber: len(g.Rounds), Count: len(g.Players)})
		s.broadcastGameUpdate(g, eventGameFinished)
		return
	}
	round := g.ActiveRound()
	s.logger.Info("round started", "game_code", g.Code, "round", len(g.Rounds), "host", round.Host, "setup_type", round.Setup.Type)
	s.recordEvent(ctx, g, eventType, round.Host, roundPayload(g))
	s.broadcastGameUpdate(g, eventType)
}

// logFailure keeps caller mistakes at debug level and surfaces faults.
func (s *Server) logFailure(op, code string, err error, keyvals ...any) {
	fields := append([]any{"game_code", code, "err", err}, keyvals...)
	if isDomainError(err) {
		fields = append(fields, "reason", game.Reason(err))
		s.logger.Debug(op+" rejected", fields...)
		return
	}
	s.logger.Error(op+" failed", fields...)
}
