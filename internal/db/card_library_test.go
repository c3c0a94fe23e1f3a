package db

import (
	"strings"
	"testing"

	"punchline/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCards(t *testing.T) {
	input := `kind,type,text
setup, pick_one, Why did the chicken cross the road?
punchline,,To get to the other side
punchline, PICK_TWO ,It was feeling cocky
setup,PICK_TWO,____ and ____.
punchline,,
short,row
`
	cards, err := ReadCards(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cards, 4)
	assert.Equal(t, CardLibrary{Kind: CardKindSetup, Type: "PICK_ONE", Text: "Why did the chicken cross the road?"}, cards[0])
	assert.Equal(t, "", cards[2].Type)

	deck := DeckFromCards(cards)
	assert.Equal(t, []game.Setup{
		{Text: "Why did the chicken cross the road?", Type: game.SetupPickOne},
		{Text: "____ and ____.", Type: game.SetupPickTwo},
	}, deck.Setups)
	assert.Equal(t, []string{"To get to the other side", "It was feeling cocky"}, deck.Punchlines)
	assert.False(t, deck.Empty())
}

func TestReadCardsRejectsUnknownValues(t *testing.T) {
	_, err := ReadCards(strings.NewReader("kind,type,text\nsetup,PICK_NINE,Nope\n"))
	assert.ErrorContains(t, err, "unknown setup type")

	_, err = ReadCards(strings.NewReader("kind,type,text\njoker,,Nope\n"))
	assert.ErrorContains(t, err, "unknown card kind")
}
