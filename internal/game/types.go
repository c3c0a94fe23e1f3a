package game

import "slices"

type SetupType string

const (
	SetupPickOne          SetupType = "PICK_ONE"
	SetupPickTwo          SetupType = "PICK_TWO"
	SetupDrawTwoPickThree SetupType = "DRAW_TWO_PICK_THREE"
)

// Required returns how many punchlines a response to this setup must contain.
// Unknown types return 0, which no submission can satisfy.
func (t SetupType) Required() int {
	switch t {
	case SetupPickOne:
		return 1
	case SetupPickTwo:
		return 2
	case SetupDrawTwoPickThree:
		return 3
	default:
		return 0
	}
}

// Extra returns how many bonus cards each player draws when the setup is revealed.
func (t SetupType) Extra() int {
	if t == SetupDrawTwoPickThree {
		return 2
	}
	return 0
}

func (t SetupType) Valid() bool {
	return t.Required() > 0
}

type State string

const (
	StateLobby              State = "LOBBY"
	StateRoundBefore        State = "ROUND_BEFORE"
	StateRoundPlayersChoose State = "ROUND_PLAYERS_CHOOSE"
	StateRoundHostChoose    State = "ROUND_HOST_CHOOSE"
	StateRoundAfter         State = "ROUND_AFTER"
	StateFinished           State = "FINISHED"
)

type RoundState string

const (
	RoundBefore        RoundState = "BEFORE"
	RoundPlayersChoose RoundState = "PLAYERS_CHOOSE"
	RoundHostChooses   RoundState = "HOST_CHOOSES"
	RoundAfter         RoundState = "AFTER"
)

// GameState is the coarse game state that mirrors a round state.
func (s RoundState) GameState() State {
	switch s {
	case RoundPlayersChoose:
		return StateRoundPlayersChoose
	case RoundHostChooses:
		return StateRoundHostChoose
	case RoundAfter:
		return StateRoundAfter
	default:
		return StateRoundBefore
	}
}

const (
	DefaultRoundLimit = 69
	DefaultMaxPlayers = 25
	MinMaxPlayers     = 3
	MaxPlayers        = 40
	MinPlayersToStart = 3
	DefaultHandSize   = 7
)

type Settings struct {
	RoundLimit int `json:"roundLimit"`
	MaxPlayers int `json:"maxPlayers"`
	HandSize   int `json:"handSize"`
}

func DefaultSettings() Settings {
	return Settings{
		RoundLimit: DefaultRoundLimit,
		MaxPlayers: DefaultMaxPlayers,
		HandSize:   DefaultHandSize,
	}
}

// Normalize clamps settings into their legal ranges.
func (s Settings) Normalize() Settings {
	if s.RoundLimit < 1 {
		s.RoundLimit = DefaultRoundLimit
	}
	if s.MaxPlayers == 0 {
		s.MaxPlayers = DefaultMaxPlayers
	}
	s.MaxPlayers = min(max(s.MaxPlayers, MinMaxPlayers), MaxPlayers)
	if s.HandSize < 1 {
		s.HandSize = DefaultHandSize
	}
	return s
}

type Setup struct {
	Text string    `json:"setup"`
	Type SetupType `json:"type"`
}

type Player struct {
	ID         string   `json:"id"`
	Nickname   string   `json:"nickname"`
	Punchlines []string `json:"punchlines"`
}

// Submission is one player's answer to a round setup.
type Submission struct {
	PlayerID   string   `json:"playerId"`
	Punchlines []string `json:"punchlines"`
}

type Winner struct {
	WinningPlayerID   string   `json:"winningPlayerId"`
	WinningPunchlines []string `json:"winningPunchlines"`
}

type Round struct {
	Setup Setup      `json:"setup"`
	Host  string     `json:"host"`
	State RoundState `json:"state"`
	// Submissions keeps insertion order; at most one entry per player.
	Submissions []Submission `json:"punchlinesByPlayer"`
	Winner      *Winner      `json:"winner,omitempty"`
}

func NewRound(setup Setup, host string) Round {
	return Round{
		Setup: setup,
		Host:  host,
		State: RoundBefore,
	}
}

// Submission looks up the punchlines a player submitted this round.
func (r *Round) Submission(playerID string) ([]string, bool) {
	for _, sub := range r.Submissions {
		if sub.PlayerID == playerID {
			return slices.Clone(sub.Punchlines), true
		}
	}
	return nil, false
}

func (r *Round) HasSubmitted(playerID string) bool {
	_, ok := r.Submission(playerID)
	return ok
}

// PunchlinesByPlayer returns every submission in the order players submitted.
func (r *Round) PunchlinesByPlayer() [][]string {
	out := make([][]string, 0, len(r.Submissions))
	for _, sub := range r.Submissions {
		out = append(out, slices.Clone(sub.Punchlines))
	}
	return out
}

func (r *Round) record(playerID string, punchlines []string) {
	r.Submissions = append(r.Submissions, Submission{
		PlayerID:   playerID,
		Punchlines: slices.Clone(punchlines),
	})
}

// Game is the aggregate persisted per session. Version is owned by the store.
type Game struct {
	Code                string   `json:"gameCode"`
	Settings            Settings `json:"settings"`
	Setups              []Setup  `json:"setups"`
	DiscardedSetups     []Setup  `json:"discardedSetups"`
	Punchlines          []string `json:"punchlines"`
	DiscardedPunchlines []string `json:"discardedPunchlines"`
	Players             []Player `json:"players"`
	Host                string   `json:"host,omitempty"`
	State               State    `json:"state"`
	Rounds              []Round  `json:"rounds"`
	Version             int64    `json:"-"`
}

func New(code string, settings Settings, deck Deck) *Game {
	return &Game{
		Code:                code,
		Settings:            settings.Normalize(),
		Setups:              slices.Clone(deck.Setups),
		DiscardedSetups:     []Setup{},
		Punchlines:          slices.Clone(deck.Punchlines),
		DiscardedPunchlines: []string{},
		Players:             []Player{},
		State:               StateLobby,
		Rounds:              []Round{},
	}
}

// ActiveRound returns the last round, or nil before the first round.
func (g *Game) ActiveRound() *Round {
	if len(g.Rounds) == 0 {
		return nil
	}
	return &g.Rounds[len(g.Rounds)-1]
}

func (g *Game) Player(id string) (*Player, bool) {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i], true
		}
	}
	return nil, false
}

func (g *Game) playerIndex(id string) int {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return i
		}
	}
	return -1
}

func (g *Game) syncState() {
	if g.State == StateFinished || g.State == StateLobby {
		return
	}
	if round := g.ActiveRound(); round != nil {
		g.State = round.State.GameState()
	}
}
