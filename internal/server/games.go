package server

import (
	"context"
	"errors"
	"fmt"

	"punchline/internal/game"
	"punchline/internal/store"
)

// CreateGame seeds a new lobby and returns its code. Codes are random, so a
// collision with an existing game just means drawing another one.
func (s *Server) CreateGame(ctx context.Context) (string, error) {
	deck, err := s.loadDeck(ctx)
	if err != nil {
		return "", err
	}
	settings := game.Settings{
		RoundLimit: s.cfg.RoundLimit,
		MaxPlayers: s.cfg.MaxPlayers,
		HandSize:   s.cfg.HandSize,
	}
	for attempt := 1; attempt <= s.cfg.GameCodeAttempts; attempt++ {
		code := game.ShortCode(s.rng, s.cfg.GameCodeDigits)
		g := game.New(code, settings, deck.Shuffled(s.rng))
		err := s.store.Create(ctx, g)
		if errors.Is(err, store.ErrCodeTaken) {
			s.logger.Debug("game code collision", "game_code", code, "attempt", attempt)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create game: %w", err)
		}
		s.logger.Info("game created", "game_code", code, "setups", len(g.Setups), "punchlines", len(g.Punchlines))
		s.recordEvent(ctx, g, eventGameCreated, "", EventPayload{GameCode: code})
		return code, nil
	}
	return "", fmt.Errorf("create game: no free game code after %d attempts", s.cfg.GameCodeAttempts)
}

// ValidateGameCode reports whether a game with this code exists.
func (s *Server) ValidateGameCode(ctx context.Context, code string) (bool, error) {
	if !game.IsShortCode(code) {
		return false, nil
	}
	exists, err := s.store.Exists(ctx, code)
	if err != nil {
		return false, fmt.Errorf("validate game code: %w", err)
	}
	return exists, nil
}

func (s *Server) loadDeck(ctx context.Context) (game.Deck, error) {
	if s.deck == nil {
		return game.StarterDeck(), nil
	}
	deck, err := s.deck(ctx)
	if err != nil {
		return game.Deck{}, fmt.Errorf("load card library: %w", err)
	}
	if deck.Empty() {
		return game.StarterDeck(), nil
	}
	return deck, nil
}

func (s *Server) loadGame(ctx context.Context, code string) (*game.Game, error) {
	g, err := s.store.Load(ctx, code)
	if err != nil {
		return nil, gameError(code, err)
	}
	return g, nil
}

func (s *Server) update(ctx context.Context, code string, update func(g *game.Game) error) (*game.Game, error) {
	g, err := s.store.Update(ctx, code, update)
	if err != nil {
		return nil, gameError(code, err)
	}
	return g, nil
}

// gameError turns a missing document into the domain's not-found error and
// leaves everything else alone.
func gameError(code string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return game.GameNotFound(code)
	}
	return err
}

// isDomainError reports whether err is caller misuse rather than a fault.
func isDomainError(err error) bool {
	var gameErr *game.Error
	return errors.As(err, &gameErr)
}
