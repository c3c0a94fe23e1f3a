package server

import (
	"context"

	"punchline/internal/game"
	"punchline/internal/store"
)

const (
	eventGameCreated        = "game_created"
	eventPlayerJoined       = "player_joined"
	eventGameStarted        = "game_started"
	eventRoundPlayersChoose = "round_players_choose"
	eventPunchlinesChosen   = "punchlines_chosen"
	eventRoundHostChooses   = "round_host_chooses"
	eventRoundWinner        = "round_winner"
	eventRoundStarted       = "round_started"
	eventGameFinished       = "game_finished"
)

type EventPayload struct {
	GameCode    string          `json:"game_code,omitempty"`
	Nickname    string          `json:"nickname,omitempty"`
	Host        string          `json:"host,omitempty"`
	RoundNumber int             `json:"round_number,omitempty"`
	Setup       string          `json:"setup,omitempty"`
	SetupType   game.SetupType  `json:"setup_type,omitempty"`
	State       game.RoundState `json:"state,omitempty"`
	Punchlines  []string        `json:"punchlines,omitempty"`
	Winner      string          `json:"winner,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	Count       int             `json:"count,omitempty"`
}

// recordEvent appends to the audit trail. The game change it describes is
// already committed, so a failure here is logged rather than returned.
func (s *Server) recordEvent(ctx context.Context, g *game.Game, eventType, playerID string, payload EventPayload) {
	err := s.store.AppendEvent(ctx, store.Event{
		GameCode: g.Code,
		PlayerID: playerID,
		Round:    len(g.Rounds),
		Type:     eventType,
		Payload:  payload,
	})
	if err != nil {
		s.logger.Error("record event failed", "game_code", g.Code, "event", eventType, "err", err)
	}
}

func roundPayload(g *game.Game) EventPayload {
	payload := EventPayload{RoundNumber: len(g.Rounds), Host: g.Host}
	if round := g.ActiveRound(); round != nil {
		payload.Setup = round.Setup.Text
		payload.SetupType = round.Setup.Type
		payload.State = round.State
		payload.Host = round.Host
		payload.Count = len(round.Submissions)
	}
	return payload
}
