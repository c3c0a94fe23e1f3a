package store

import (
	"context"
	"errors"
	"fmt"

	"punchline/internal/game"
)

// Store runs every write to a game as load, mutate, save under a per-game
// lock. The lock serializes writers inside this process; the repository's
// version check catches writers in other processes, in which case the update
// is retried against a fresh copy.
type Store struct {
	repo        Repository
	locks       *keyedMutex
	maxAttempts int
}

func NewStore(repo Repository, maxAttempts int) *Store {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Store{
		repo:        repo,
		locks:       newKeyedMutex(),
		maxAttempts: maxAttempts,
	}
}

func (s *Store) Create(ctx context.Context, g *game.Game) error {
	return s.repo.Create(ctx, g)
}

func (s *Store) Load(ctx context.Context, code string) (*game.Game, error) {
	return s.repo.Load(ctx, code)
}

func (s *Store) Exists(ctx context.Context, code string) (bool, error) {
	return s.repo.Exists(ctx, code)
}

func (s *Store) AppendEvent(ctx context.Context, event Event) error {
	return s.repo.AppendEvent(ctx, event)
}

// Update applies update to the current copy of a game and saves it. An error
// from update aborts without saving. update may run more than once and must
// only touch the game it is given.
func (s *Store) Update(ctx context.Context, code string, update func(g *game.Game) error) (*game.Game, error) {
	unlock := s.locks.Lock(code)
	defer unlock()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, err := s.repo.Load(ctx, code)
		if err != nil {
			return nil, err
		}
		if err := update(g); err != nil {
			return nil, err
		}
		err = s.repo.Save(ctx, g)
		if err == nil {
			return g, nil
		}
		if !errors.Is(err, ErrConflict) || attempt >= s.maxAttempts {
			return nil, fmt.Errorf("update game %s after %d attempts: %w", code, attempt, err)
		}
	}
}
