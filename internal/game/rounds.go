package game

import "slices"

// Start moves the game out of the lobby. The requester becomes the first host.
func (g *Game) Start(rng Rand, requesterID string) error {
	if g.State != StateLobby || len(g.Rounds) > 0 {
		return newError(ErrInvalidRoundTransition, msgStartRound, "game state is %s", g.State)
	}
	if _, ok := g.Player(requesterID); !ok {
		return newError(ErrInvalidRoundTransition, msgStartRound, "requester %q is not a player", requesterID)
	}
	if len(g.Players) < MinPlayersToStart {
		return newError(ErrInvalidRoundTransition, msgStartRound, "need %d players, have %d", MinPlayersToStart, len(g.Players))
	}
	for i := range g.Players {
		g.topUp(rng, &g.Players[i], g.Settings.HandSize)
	}
	g.Host = requesterID
	g.State = StateRoundBefore
	g.beginRound(rng)
	return nil
}

// beginRound pushes a fresh round for the current host, or finishes the game
// when no setups are left.
func (g *Game) beginRound(rng Rand) {
	setup, ok := g.drawSetup(rng)
	if !ok {
		g.State = StateFinished
		return
	}
	g.dealRound(rng, g.Host, setup)
	g.Rounds = append(g.Rounds, NewRound(setup, g.Host))
	g.syncState()
}

// BeginPlayersChoose opens the round for submissions: BEFORE -> PLAYERS_CHOOSE.
func (g *Game) BeginPlayersChoose(requesterID string) error {
	round := g.ActiveRound()
	if round == nil {
		return newError(ErrInvalidRoundTransition, msgBeginRound, "no rounds")
	}
	if round.State != RoundBefore {
		return newError(ErrInvalidRoundTransition, msgBeginRound, "round state is %s", round.State)
	}
	if requesterID != round.Host {
		return newError(ErrInvalidRoundTransition, msgBeginRound, "requester %q is not the round host", requesterID)
	}
	round.State = RoundPlayersChoose
	g.syncState()
	return nil
}

// ChoosePunchlines records a player's answer to the active round and moves
// the chosen cards from their hand to the discard pile. Nothing is mutated
// unless every precondition holds.
func (g *Game) ChoosePunchlines(playerID string, chosen []string) error {
	round := g.ActiveRound()
	if round == nil {
		return newError(ErrInvalidSubmission, msgChoose, "no rounds")
	}
	if round.State != RoundPlayersChoose {
		return newError(ErrInvalidSubmission, msgChoose, "round state is %s", round.State)
	}
	if playerID == round.Host {
		return newError(ErrInvalidSubmission, msgChoose, "player %q is the round host", playerID)
	}
	player, ok := g.Player(playerID)
	if !ok {
		return newError(ErrInvalidSubmission, msgChoose, "player %q is not in the game", playerID)
	}
	if round.HasSubmitted(playerID) {
		return newError(ErrInvalidSubmission, msgChoose, "player %q already submitted", playerID)
	}
	if required := round.Setup.Type.Required(); len(chosen) != required {
		return newError(ErrInvalidSubmission, msgChoose, "%s needs %d punchlines, got %d", round.Setup.Type, required, len(chosen))
	}
	if !holds(player.Punchlines, chosen) {
		return newError(ErrInvalidSubmission, msgChoose, "player %q does not hold every chosen punchline", playerID)
	}
	chosen = slices.Clone(chosen)
	g.discard(player, chosen)
	round.record(playerID, chosen)
	return nil
}

// BeginHostChooses closes submissions and returns them, in submission order,
// for the host to judge: PLAYERS_CHOOSE -> HOST_CHOOSES.
func (g *Game) BeginHostChooses(requesterID string) ([][]string, error) {
	round := g.ActiveRound()
	if round == nil {
		return nil, newError(ErrInvalidRoundTransition, msgEnterState, "no rounds")
	}
	if round.State != RoundPlayersChoose {
		return nil, newError(ErrInvalidRoundTransition, msgEnterState, "round state is %s", round.State)
	}
	if requesterID != round.Host {
		return nil, newError(ErrInvalidRoundTransition, msgEnterState, "requester %q is not the round host", requesterID)
	}
	round.State = RoundHostChooses
	g.syncState()
	return round.PunchlinesByPlayer(), nil
}

// ChooseWinner records the host's pick: HOST_CHOOSES -> AFTER.
func (g *Game) ChooseWinner(requesterID, winningPlayerID string) (Winner, error) {
	round := g.ActiveRound()
	if round == nil {
		return Winner{}, newError(ErrInvalidRoundTransition, msgChooseWinner, "no rounds")
	}
	if round.State != RoundHostChooses {
		return Winner{}, newError(ErrInvalidRoundTransition, msgChooseWinner, "round state is %s", round.State)
	}
	if requesterID != round.Host {
		return Winner{}, newError(ErrInvalidRoundTransition, msgChooseWinner, "requester %q is not the round host", requesterID)
	}
	punchlines, ok := round.Submission(winningPlayerID)
	if !ok {
		return Winner{}, newError(ErrInvalidRoundTransition, msgChooseWinner, "player %q has no submission", winningPlayerID)
	}
	winner := Winner{WinningPlayerID: winningPlayerID, WinningPunchlines: punchlines}
	round.Winner = &winner
	round.State = RoundAfter
	g.syncState()
	return winner, nil
}

// NextRound rotates the host and starts another round, or finishes the game
// once the round limit is reached. A round that closed with no submissions
// has nothing to judge, so the host may skip it straight from HOST_CHOOSES;
// it ends without a winner.
func (g *Game) NextRound(rng Rand, requesterID string) error {
	round := g.ActiveRound()
	if round == nil {
		return newError(ErrInvalidRoundTransition, msgStartRound, "no rounds")
	}
	unanswered := round.State == RoundHostChooses && len(round.Submissions) == 0
	if (round.State != RoundAfter && !unanswered) || g.State == StateFinished {
		return newError(ErrInvalidRoundTransition, msgStartRound, "round state is %s, game state is %s", round.State, g.State)
	}
	if requesterID != round.Host {
		return newError(ErrInvalidRoundTransition, msgStartRound, "requester %q is not the round host", requesterID)
	}
	if unanswered {
		round.State = RoundAfter
		g.syncState()
	}
	if len(g.Rounds) >= g.Settings.RoundLimit {
		g.State = StateFinished
		return nil
	}
	g.Host = g.nextHost()
	g.beginRound(rng)
	return nil
}

// Finished reports whether the game has reached its terminal state.
func (g *Game) Finished() bool {
	return g.State == StateFinished
}
