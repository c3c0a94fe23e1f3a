package game

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const maxNicknameLength = 20

// NormalizeNickname trims and collapses whitespace, then checks length and
// character set.
func NormalizeNickname(nickname string) (string, error) {
	trimmed := strings.Join(strings.Fields(nickname), " ")
	if trimmed == "" {
		return "", InvalidRequest("nickname is required")
	}
	if len([]rune(trimmed)) > maxNicknameLength {
		return "", InvalidRequest(fmt.Sprintf("nickname must be %d characters or fewer", maxNicknameLength))
	}
	for _, r := range trimmed {
		if !unicode.IsPrint(r) {
			return "", InvalidRequest("nickname contains unsupported characters")
		}
	}
	return trimmed, nil
}

func NewPlayer(nickname string) Player {
	return Player{
		ID:         uuid.NewString(),
		Nickname:   nickname,
		Punchlines: []string{},
	}
}

// AddPlayer registers a new player. Players who join once rounds are under
// way are dealt a hand straight away; everyone else is dealt at game start.
func (g *Game) AddPlayer(rng Rand, nickname string) (Player, error) {
	name, err := NormalizeNickname(nickname)
	if err != nil {
		return Player{}, err
	}
	if g.State == StateFinished {
		return Player{}, newError(ErrInvalidRoundTransition, msgJoinGame, "game is finished")
	}
	if len(g.Players) >= g.Settings.MaxPlayers {
		return Player{}, newError(ErrGameFull, msgGameFull, "game has %d of %d players", len(g.Players), g.Settings.MaxPlayers)
	}
	g.Players = append(g.Players, NewPlayer(name))
	player := &g.Players[len(g.Players)-1]
	if g.State != StateLobby {
		g.topUp(rng, player, g.Settings.HandSize)
	}
	return *player, nil
}

// nextHost picks the player after the current host in join order. A host that
// is not a player (a system seat) hands over to the first player.
func (g *Game) nextHost() string {
	if len(g.Players) == 0 {
		return g.Host
	}
	i := g.playerIndex(g.Host)
	if i < 0 {
		return g.Players[0].ID
	}
	return g.Players[(i+1)%len(g.Players)].ID
}
