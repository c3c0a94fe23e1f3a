package game

import "slices"

// drawPunchlines takes up to n cards from the front of the draw pool. When the
// pool runs dry the discard pile is shuffled back in; if nothing can be
// recycled fewer than n cards are returned.
func (g *Game) drawPunchlines(rng Rand, n int) []string {
	drawn := make([]string, 0, max(n, 0))
	for len(drawn) < n {
		if len(g.Punchlines) == 0 {
			g.recycleDiscards(rng)
			if len(g.Punchlines) == 0 {
				break
			}
		}
		take := min(n-len(drawn), len(g.Punchlines))
		drawn = append(drawn, g.Punchlines[:take]...)
		g.Punchlines = slices.Clone(g.Punchlines[take:])
	}
	return drawn
}

// recycleDiscards shuffles the discard pile into the draw pool. Cards
// submitted to the active round stay in the discard pile while that round is
// on the table, so they cannot be drawn and submitted again.
func (g *Game) recycleDiscards(rng Rand) {
	inPlay := make(map[string]int)
	if round := g.ActiveRound(); round != nil {
		for _, submission := range round.Submissions {
			for _, card := range submission.Punchlines {
				inPlay[card]++
			}
		}
	}
	kept := []string{}
	recycled := make([]string, 0, len(g.DiscardedPunchlines))
	for _, card := range g.DiscardedPunchlines {
		if inPlay[card] > 0 {
			inPlay[card]--
			kept = append(kept, card)
			continue
		}
		recycled = append(recycled, card)
	}
	g.Punchlines = Shuffle(rng, recycled)
	g.DiscardedPunchlines = kept
}

// deal gives a player n more cards.
func (g *Game) deal(rng Rand, player *Player, n int) {
	if n <= 0 {
		return
	}
	player.Punchlines = append(player.Punchlines, g.drawPunchlines(rng, n)...)
}

// topUp deals a player back up to size cards.
func (g *Game) topUp(rng Rand, player *Player, size int) {
	g.deal(rng, player, size-len(player.Punchlines))
}

// dealRound refills every non-host hand for the round that is about to start,
// plus the setup's bonus draw.
func (g *Game) dealRound(rng Rand, host string, setup Setup) {
	for i := range g.Players {
		player := &g.Players[i]
		if player.ID == host {
			continue
		}
		g.topUp(rng, player, g.Settings.HandSize)
		g.deal(rng, player, setup.Type.Extra())
	}
}

// holds reports whether every card in chosen is in hand, counting duplicates.
func holds(hand, chosen []string) bool {
	counts := make(map[string]int, len(hand))
	for _, card := range hand {
		counts[card]++
	}
	for _, card := range chosen {
		if counts[card] == 0 {
			return false
		}
		counts[card]--
	}
	return true
}

// discard moves chosen from the player's hand to the discard pile, in order.
// Callers must have checked holds first.
func (g *Game) discard(player *Player, chosen []string) {
	hand := slices.Clone(player.Punchlines)
	for _, card := range chosen {
		if i := slices.Index(hand, card); i >= 0 {
			hand = slices.Delete(hand, i, i+1)
		}
	}
	player.Punchlines = hand
	g.DiscardedPunchlines = append(g.DiscardedPunchlines, chosen...)
}

// drawSetup takes the next setup prompt and retires it. Used setups are
// recycled once the pool is empty.
func (g *Game) drawSetup(rng Rand) (Setup, bool) {
	if len(g.Setups) == 0 {
		if len(g.DiscardedSetups) == 0 {
			return Setup{}, false
		}
		g.Setups = Shuffle(rng, g.DiscardedSetups)
		g.DiscardedSetups = []Setup{}
	}
	setup := g.Setups[0]
	g.Setups = slices.Clone(g.Setups[1:])
	g.DiscardedSetups = append(g.DiscardedSetups, setup)
	return setup, true
}
