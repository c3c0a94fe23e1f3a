package server

import (
	"context"
	"io"
	"math/rand/v2"
	"net/http"
	"sync"

	"punchline/internal/config"
	"punchline/internal/game"
	"punchline/internal/store"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// DeckSource supplies the card pool for new games. An empty deck falls back
// to the built-in starter deck.
type DeckSource func(ctx context.Context) (game.Deck, error)

type Server struct {
	store    *store.Store
	cfg      config.Config
	logger   *log.Logger
	rng      game.Rand
	deck     DeckSource
	ws       *wsHub
	clock    quartz.Clock
	timersMu sync.Mutex
	timers   map[string]*quartz.Timer
}

type Option func(*Server)

func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRand makes shuffles and game codes reproducible.
func WithRand(rng game.Rand) Option {
	return func(s *Server) {
		s.rng = &lockedRand{src: rng}
	}
}

func WithDeck(source DeckSource) Option {
	return func(s *Server) {
		s.deck = source
	}
}

func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

func New(repo store.Repository, cfg config.Config, opts ...Option) *Server {
	s := &Server{
		store:  store.NewStore(repo, cfg.StoreMaxAttempts),
		cfg:    cfg,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		rng:    globalRand{},
		ws:     newWSHub(),
		clock:  quartz.NewReal(),
		timers: make(map[string]*quartz.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.routes()
}

// Close stops pending phase timers.
func (s *Server) Close() {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	for code, timer := range s.timers {
		timer.Stop()
		delete(s.timers, code)
	}
}

// globalRand uses the runtime-seeded, goroutine-safe generator.
type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

type lockedRand struct {
	mu  sync.Mutex
	src game.Rand
}

func (r *lockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.IntN(n)
}
