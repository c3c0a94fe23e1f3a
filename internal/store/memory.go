package store

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"punchline/internal/game"
)

type memoryDocument struct {
	data    []byte
	version int64
}

// MemoryRepository keeps encoded documents in memory, so every Load hands out
// an independent copy just like a real document store would.
type MemoryRepository struct {
	mu     sync.Mutex
	docs   map[string]memoryDocument
	events []Event
	loads  atomic.Int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		docs: make(map[string]memoryDocument),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, g *game.Game) error {
	data, err := encodeGame(g)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[g.Code]; ok {
		return ErrCodeTaken
	}
	r.docs[g.Code] = memoryDocument{data: data, version: 1}
	g.Version = 1
	return nil
}

func (r *MemoryRepository) Load(ctx context.Context, code string) (*game.Game, error) {
	r.loads.Add(1)
	r.mu.Lock()
	doc, ok := r.docs[code]
	r.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decodeGame(doc.data, doc.version)
}

func (r *MemoryRepository) Save(ctx context.Context, g *game.Game) error {
	data, err := encodeGame(g)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[g.Code]
	if !ok {
		return ErrNotFound
	}
	if doc.version != g.Version {
		return ErrConflict
	}
	r.docs[g.Code] = memoryDocument{data: data, version: doc.version + 1}
	g.Version = doc.version + 1
	return nil
}

func (r *MemoryRepository) Exists(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.docs[code]
	return ok, nil
}

func (r *MemoryRepository) AppendEvent(ctx context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Loads reports how many times Load has been called.
func (r *MemoryRepository) Loads() int64 {
	return r.loads.Load()
}

// Events returns the event types recorded for a game, oldest first.
func (r *MemoryRepository) Events(code string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var types []string
	for _, event := range r.events {
		if event.GameCode == code {
			types = append(types, event.Type)
		}
	}
	return slices.Clip(types)
}
