package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"punchline/internal/game"
)

var (
	ErrNotFound  = errors.New("game not found")
	ErrCodeTaken = errors.New("game code already in use")
	ErrConflict  = errors.New("game was modified concurrently")
)

// Repository reads and writes whole game aggregates keyed by game code.
//
// Load returns ErrNotFound for unknown codes. Create returns ErrCodeTaken when
// the code is in use. Save returns ErrConflict when the stored version no longer
// matches game.Version, and bumps game.Version on success.
type Repository interface {
	Create(ctx context.Context, g *game.Game) error
	Load(ctx context.Context, code string) (*game.Game, error)
	Save(ctx context.Context, g *game.Game) error
	Exists(ctx context.Context, code string) (bool, error)
	AppendEvent(ctx context.Context, event Event) error
}

type Event struct {
	GameCode string
	PlayerID string
	Round    int
	Type     string
	Payload  any
}

func encodeGame(g *game.Game) ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encode game %s: %w", g.Code, err)
	}
	return data, nil
}

func decodeGame(data []byte, version int64) (*game.Game, error) {
	var g game.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode game: %w", err)
	}
	g.Version = version
	return &g, nil
}
