package server

import (
	"context"
	"slices"

	"punchline/internal/game"
)

// CreatePlayer adds a player to a game and returns the new player's id.
func (s *Server) CreatePlayer(ctx context.Context, code, nickname string) (string, error) {
	var player game.Player
	g, err := s.update(ctx, code, func(g *game.Game) error {
		added, err := g.AddPlayer(s.rng, nickname)
		player = added
		return err
	})
	if err != nil {
		s.logFailure("create player", code, err)
		return "", err
	}
	s.logger.Info("player joined", "game_code", code, "player_id", player.ID, "nickname", player.Nickname, "players", len(g.Players))
	s.recordEvent(ctx, g, eventPlayerJoined, player.ID, EventPayload{Nickname: player.Nickname, Count: len(g.Players)})
	s.broadcastGameUpdate(g, eventPlayerJoined)
	return player.ID, nil
}

// GetPlayer finds a player. When loaded is non-nil it is used instead of
// reading the game again, so one operation sees one copy of the game.
func (s *Server) GetPlayer(ctx context.Context, code, playerID string, loaded *game.Game) (game.Player, error) {
	g := loaded
	if g == nil {
		var err error
		if g, err = s.loadGame(ctx, code); err != nil {
			return game.Player{}, err
		}
	}
	player, ok := g.Player(playerID)
	if !ok {
		return game.Player{}, game.PlayerNotFound(playerID)
	}
	out := *player
	out.Punchlines = slices.Clone(player.Punchlines)
	return out, nil
}

// ValidatePlayerID reports whether playerID belongs to the game. Unknown codes
// and unknown players are both just false.
func (s *Server) ValidatePlayerID(ctx context.Context, code, playerID string) (bool, error) {
	if _, err := s.GetPlayer(ctx, code, playerID, nil); err != nil {
		if isDomainError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
