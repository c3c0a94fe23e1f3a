package server

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand/v2"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"punchline/internal/config"
	"punchline/internal/game"
	"punchline/internal/store"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cfg config.Config, opts ...Option) (*Server, *store.MemoryRepository) {
	t.Helper()
	repo := store.NewMemoryRepository()
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(3, 9)))}, opts...)
	srv := New(repo, cfg, opts...)
	t.Cleanup(srv.Close)
	return srv, repo
}

func newHTTPServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	t.Cleanup(ts.Close)
	return ts
}

// startedGame creates a game with three players and starts it. The first
// player hosts round one.
func startedGame(t *testing.T, srv *Server) (string, []string) {
	t.Helper()
	ctx := context.Background()
	code, err := srv.CreateGame(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, 3)
	for _, name := range []string{"Ada", "Bob", "Cy"} {
		id, err := srv.CreatePlayer(ctx, code, name)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.NoError(t, srv.StartGame(ctx, code, ids[0]))
	return code, ids
}

// pickFromHand returns as many punchlines from the player's hand as the
// active setup asks for.
func pickFromHand(t *testing.T, srv *Server, code, playerID string) []string {
	t.Helper()
	g, err := srv.loadGame(context.Background(), code)
	require.NoError(t, err)
	player, err := srv.GetPlayer(context.Background(), code, playerID, g)
	require.NoError(t, err)
	need := g.ActiveRound().Setup.Type.Required()
	require.GreaterOrEqual(t, len(player.Punchlines), need)
	return player.Punchlines[:need]
}

func activeRound(t *testing.T, srv *Server, code string) *game.Round {
	t.Helper()
	g, err := srv.loadGame(context.Background(), code)
	require.NoError(t, err)
	round := g.ActiveRound()
	require.NotNil(t, round)
	return round
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
