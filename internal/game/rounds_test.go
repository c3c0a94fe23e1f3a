package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chickenSetup = "Why did the chicken cross the road?"

var bobsHand = []string{
	"To get to the other side",
	"To avoid bad jokes",
	"To go to KFC",
	"To go to Cheeky Nando's with the lads",
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	return New("123456", DefaultSettings(), StarterDeck())
}

// roundGame returns a game with one round hosted by "abc123" and a player Bob
// holding bobsHand.
func roundGame(t *testing.T, state RoundState, setupType SetupType) (*Game, string) {
	t.Helper()
	g := newTestGame(t)
	player, err := g.AddPlayer(testRand(), "Bob")
	require.NoError(t, err)
	g.Players[0].Punchlines = append([]string(nil), bobsHand...)
	round := NewRound(Setup{Text: chickenSetup, Type: setupType}, "abc123")
	round.State = state
	g.Rounds = append(g.Rounds, round)
	g.State = state.GameState()
	return g, player.ID
}

func requireKind(t *testing.T, err error, kind error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, kind)
	assert.EqualError(t, err, message)
}

func TestBeginPlayersChoose(t *testing.T) {
	t.Run("enters players choose state", func(t *testing.T) {
		g, _ := roundGame(t, RoundBefore, SetupPickOne)
		require.NoError(t, g.BeginPlayersChoose("abc123"))
		assert.Equal(t, RoundPlayersChoose, g.Rounds[0].State)
		assert.Equal(t, StateRoundPlayersChoose, g.State)
	})

	t.Run("no rounds", func(t *testing.T) {
		g := newTestGame(t)
		requireKind(t, g.BeginPlayersChoose("abc123"), ErrInvalidRoundTransition, "Cannot begin round")
	})

	t.Run("round not before", func(t *testing.T) {
		g, _ := roundGame(t, RoundPlayersChoose, SetupPickOne)
		requireKind(t, g.BeginPlayersChoose("abc123"), ErrInvalidRoundTransition, "Cannot begin round")
	})

	t.Run("requester is not host", func(t *testing.T) {
		g, _ := roundGame(t, RoundBefore, SetupPickOne)
		g.Rounds[0].Host = "abcd1234"
		requireKind(t, g.BeginPlayersChoose("abc123"), ErrInvalidRoundTransition, "Cannot begin round")
		assert.Equal(t, RoundBefore, g.Rounds[0].State)
	})
}

func TestChoosePunchlines(t *testing.T) {
	t.Run("moves chosen cards to the discard pile", func(t *testing.T) {
		g, bob := roundGame(t, RoundPlayersChoose, SetupPickOne)

		require.NoError(t, g.ChoosePunchlines(bob, []string{"To get to the other side"}))

		player, ok := g.Player(bob)
		require.True(t, ok)
		assert.NotContains(t, player.Punchlines, "To get to the other side")
		assert.Len(t, player.Punchlines, 3)
		assert.Equal(t, []string{"To get to the other side"}, g.DiscardedPunchlines)
		submitted, ok := g.Rounds[0].Submission(bob)
		require.True(t, ok)
		assert.Equal(t, []string{"To get to the other side"}, submitted)
	})

	t.Run("keeps submissions from several players apart", func(t *testing.T) {
		g, bob := roundGame(t, RoundPlayersChoose, SetupPickOne)
		fred, err := g.AddPlayer(testRand(), "Fred")
		require.NoError(t, err)
		g.Players[1].Punchlines = []string{"To prove it wasn't chicken!", "It was feeling cocky"}

		require.NoError(t, g.ChoosePunchlines(bob, []string{"To get to the other side"}))
		require.NoError(t, g.ChoosePunchlines(fred.ID, []string{"It was feeling cocky"}))

		assert.Equal(t, []string{"To prove it wasn't chicken!"}, g.Players[1].Punchlines)
		assert.Equal(t, [][]string{{"To get to the other side"}, {"It was feeling cocky"}}, g.Rounds[0].PunchlinesByPlayer())
		assert.ElementsMatch(t, []string{"To get to the other side", "It was feeling cocky"}, g.DiscardedPunchlines)
	})

	t.Run("keeps submission order for multi-card setups", func(t *testing.T) {
		g, bob := roundGame(t, RoundPlayersChoose, SetupDrawTwoPickThree)
		chosen := []string{"To go to KFC", "To get to the other side", "To avoid bad jokes"}

		require.NoError(t, g.ChoosePunchlines(bob, chosen))

		submitted, _ := g.Rounds[0].Submission(bob)
		assert.Equal(t, chosen, submitted)
		assert.Equal(t, chosen, g.DiscardedPunchlines)
		assert.Equal(t, []string{"To go to Cheeky Nando's with the lads"}, g.Players[0].Punchlines)
	})

	failures := []struct {
		name    string
		setup   func(g *Game, bob string)
		player  func(bob string) string
		chosen  []string
		players int
	}{
		{
			name:   "no rounds",
			setup:  func(g *Game, _ string) { g.Rounds = nil },
			chosen: []string{"To get to the other side"},
		},
		{
			name:   "round not players choose",
			setup:  func(g *Game, _ string) { g.Rounds[0].State = RoundBefore },
			chosen: []string{"To get to the other side"},
		},
		{
			name:   "player is the round host",
			player: func(string) string { return "abc123" },
			chosen: []string{"To get to the other side"},
		},
		{
			name: "player already chose",
			setup: func(g *Game, bob string) {
				g.Rounds[0].Submissions = []Submission{{PlayerID: bob, Punchlines: []string{"To avoid bad jokes"}}}
			},
			chosen: []string{"To get to the other side"},
		},
		{
			name:   "two punchlines for pick one",
			chosen: []string{"To get to the other side", "To avoid bad jokes"},
		},
		{
			name:   "three punchlines for pick two",
			setup:  func(g *Game, _ string) { g.Rounds[0].Setup.Type = SetupPickTwo },
			chosen: []string{"To get to the other side", "To avoid bad jokes", "To go to KFC"},
		},
		{
			name:   "two punchlines for draw two pick three",
			setup:  func(g *Game, _ string) { g.Rounds[0].Setup.Type = SetupDrawTwoPickThree },
			chosen: []string{"To get to the other side", "To avoid bad jokes"},
		},
		{
			name:  "four punchlines for draw two pick three",
			setup: func(g *Game, _ string) { g.Rounds[0].Setup.Type = SetupDrawTwoPickThree },
			chosen: []string{
				"To get to the other side",
				"To avoid bad jokes",
				"To go to KFC",
				"To go to Cheeky Nando's with the lads",
			},
		},
		{
			name:   "player not in game",
			setup:  func(g *Game, _ string) { g.Players = g.Players[:0] },
			chosen: []string{"To get to the other side"},
		},
		{
			name:   "punchline not in hand",
			chosen: []string{"To try out their black market jokes"},
		},
		{
			name:   "duplicate beyond hand contents",
			setup:  func(g *Game, _ string) { g.Rounds[0].Setup.Type = SetupPickTwo },
			chosen: []string{"To go to KFC", "To go to KFC"},
		},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			g, bob := roundGame(t, RoundPlayersChoose, SetupPickOne)
			if tc.setup != nil {
				tc.setup(g, bob)
			}
			playerID := bob
			if tc.player != nil {
				playerID = tc.player(bob)
			}
			var handBefore []string
			if p, ok := g.Player(bob); ok {
				handBefore = append([]string(nil), p.Punchlines...)
			}
			submissionsBefore := 0
			if round := g.ActiveRound(); round != nil {
				submissionsBefore = len(round.Submissions)
			}

			requireKind(t, g.ChoosePunchlines(playerID, tc.chosen), ErrInvalidSubmission, "Cannot choose punchlines")

			assert.Empty(t, g.DiscardedPunchlines)
			if p, ok := g.Player(bob); ok {
				assert.Equal(t, handBefore, p.Punchlines)
			}
			if round := g.ActiveRound(); round != nil {
				assert.Len(t, round.Submissions, submissionsBefore)
			}
		})
	}
}

func TestChoosePunchlinesAllowsHeldDuplicates(t *testing.T) {
	g, bob := roundGame(t, RoundPlayersChoose, SetupPickTwo)
	g.Players[0].Punchlines = []string{"Dad jokes", "Dad jokes", "Reply-all"}

	require.NoError(t, g.ChoosePunchlines(bob, []string{"Dad jokes", "Dad jokes"}))
	assert.Equal(t, []string{"Reply-all"}, g.Players[0].Punchlines)
	assert.Equal(t, []string{"Dad jokes", "Dad jokes"}, g.DiscardedPunchlines)
}

func TestBeginHostChooses(t *testing.T) {
	withSubmissions := func(t *testing.T) *Game {
		g, _ := roundGame(t, RoundPlayersChoose, SetupPickOne)
		g.Rounds[0].Submissions = []Submission{
			{PlayerID: "abc123", Punchlines: []string{"To get to the other side"}},
			{PlayerID: "def456", Punchlines: []string{"It was feeling cocky"}},
		}
		return g
	}

	t.Run("enters host chooses state", func(t *testing.T) {
		g := withSubmissions(t)
		punchlines, err := g.BeginHostChooses("abc123")
		require.NoError(t, err)
		assert.Equal(t, RoundHostChooses, g.Rounds[0].State)
		assert.Equal(t, StateRoundHostChoose, g.State)
		assert.Equal(t, [][]string{{"To get to the other side"}, {"It was feeling cocky"}}, punchlines)
	})

	t.Run("no rounds", func(t *testing.T) {
		g := newTestGame(t)
		_, err := g.BeginHostChooses("abc123")
		requireKind(t, err, ErrInvalidRoundTransition, "Cannot enter state")
	})

	t.Run("round not players choose", func(t *testing.T) {
		g := withSubmissions(t)
		g.Rounds[0].State = RoundBefore
		_, err := g.BeginHostChooses("abc123")
		requireKind(t, err, ErrInvalidRoundTransition, "Cannot enter state")
	})

	t.Run("requester is not host", func(t *testing.T) {
		g := withSubmissions(t)
		g.Rounds[0].Host = "abcd1234"
		_, err := g.BeginHostChooses("abc123")
		requireKind(t, err, ErrInvalidRoundTransition, "Cannot enter state")
		assert.Equal(t, RoundPlayersChoose, g.Rounds[0].State)
	})
}

func TestChooseWinner(t *testing.T) {
	g, bob := roundGame(t, RoundPlayersChoose, SetupPickOne)
	require.NoError(t, g.ChoosePunchlines(bob, []string{"To go to KFC"}))

	_, err := g.ChooseWinner("abc123", bob)
	requireKind(t, err, ErrInvalidRoundTransition, "Cannot choose winner")

	_, err = g.BeginHostChooses("abc123")
	require.NoError(t, err)

	_, err = g.ChooseWinner(bob, bob)
	requireKind(t, err, ErrInvalidRoundTransition, "Cannot choose winner")

	_, err = g.ChooseWinner("abc123", "nobody")
	requireKind(t, err, ErrInvalidRoundTransition, "Cannot choose winner")

	winner, err := g.ChooseWinner("abc123", bob)
	require.NoError(t, err)
	assert.Equal(t, Winner{WinningPlayerID: bob, WinningPunchlines: []string{"To go to KFC"}}, winner)
	assert.Equal(t, RoundAfter, g.Rounds[0].State)
	assert.Equal(t, StateRoundAfter, g.State)
	require.NotNil(t, g.Rounds[0].Winner)
}
