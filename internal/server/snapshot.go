package server

import (
	"slices"

	"punchline/internal/game"
)

type Snapshot struct {
	GameCode    string          `json:"gameCode"`
	State       game.State      `json:"state"`
	Settings    game.Settings   `json:"settings"`
	Host        string          `json:"host,omitempty"`
	Players     []PlayerSummary `json:"players"`
	RoundNumber int             `json:"roundNumber"`
	Round       *RoundSnapshot  `json:"round,omitempty"`
	Wins        map[string]int  `json:"wins"`
	Viewer      *ViewerSnapshot `json:"viewer,omitempty"`
}

type PlayerSummary struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	HandSize  int    `json:"handSize"`
	Submitted bool   `json:"submitted"`
}

type RoundSnapshot struct {
	Setup      game.Setup      `json:"setup"`
	Host       string          `json:"host"`
	State      game.RoundState `json:"state"`
	Submitted  int             `json:"numSubmitted"`
	Punchlines [][]string      `json:"punchlines,omitempty"`
	Winner     *game.Winner    `json:"winner,omitempty"`
}

// ViewerSnapshot is the part of a snapshot only its viewer may see.
type ViewerSnapshot struct {
	PlayerID   string   `json:"playerId"`
	Punchlines []string `json:"punchlines"`
	Chosen     []string `json:"chosen,omitempty"`
}

// snapshot renders the game for one viewer. Hands stay private, and
// submissions are only revealed once the host is judging.
func snapshot(g *game.Game, viewerID string) Snapshot {
	out := Snapshot{
		GameCode:    g.Code,
		State:       g.State,
		Settings:    g.Settings,
		Host:        g.Host,
		Players:     make([]PlayerSummary, 0, len(g.Players)),
		RoundNumber: len(g.Rounds),
		Wins:        make(map[string]int),
	}
	round := g.ActiveRound()
	for _, player := range g.Players {
		out.Players = append(out.Players, PlayerSummary{
			ID:        player.ID,
			Nickname:  player.Nickname,
			HandSize:  len(player.Punchlines),
			Submitted: round != nil && round.HasSubmitted(player.ID),
		})
	}
	for _, past := range g.Rounds {
		if past.Winner != nil {
			out.Wins[past.Winner.WinningPlayerID]++
		}
	}
	if round != nil {
		rs := &RoundSnapshot{
			Setup:     round.Setup,
			Host:      round.Host,
			State:     round.State,
			Submitted: len(round.Submissions),
			Winner:    round.Winner,
		}
		if round.State == game.RoundHostChooses || round.State == game.RoundAfter {
			rs.Punchlines = round.PunchlinesByPlayer()
		}
		out.Round = rs
	}
	if player, ok := g.Player(viewerID); ok {
		viewer := &ViewerSnapshot{
			PlayerID:   player.ID,
			Punchlines: slices.Clone(player.Punchlines),
		}
		if round != nil {
			viewer.Chosen, _ = round.Submission(player.ID)
		}
		out.Viewer = viewer
	}
	return out
}
