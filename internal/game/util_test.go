package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortCode(t *testing.T) {
	rng := testRand()
	for range 200 {
		code := ShortCode(rng, 6)
		assert.Len(t, code, 6)
		assert.True(t, IsShortCode(code), code)
	}
	assert.Len(t, ShortCode(rng, 0), 1)
}

func TestIsShortCode(t *testing.T) {
	assert.True(t, IsShortCode("123456"))
	assert.False(t, IsShortCode(""))
	assert.False(t, IsShortCode("012345"))
	assert.False(t, IsShortCode("12a456"))
}

func TestShuffleIsDeterministicAndComplete(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}

	first := Shuffle(rand.New(rand.NewPCG(1, 2)), items)
	second := Shuffle(rand.New(rand.NewPCG(1, 2)), items)

	assert.Equal(t, first, second)
	assert.ElementsMatch(t, items, first)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, items, "input must not be modified")
}

func TestShuffleIsRoughlyUniform(t *testing.T) {
	rng := testRand()
	counts := map[int]int{}
	const trials = 6000
	for range trials {
		counts[Shuffle(rng, []int{0, 1, 2})[0]]++
	}
	for value := range 3 {
		assert.InDelta(t, trials/3, counts[value], trials/10, "value %d", value)
	}
}

func TestStarterDeckIsPlayable(t *testing.T) {
	deck := StarterDeck()
	assert.False(t, deck.Empty())
	for _, setup := range deck.Setups {
		assert.True(t, setup.Type.Valid(), setup.Text)
	}
	shuffled := deck.Shuffled(testRand())
	assert.ElementsMatch(t, deck.Punchlines, shuffled.Punchlines)
	assert.ElementsMatch(t, deck.Setups, shuffled.Setups)
}
