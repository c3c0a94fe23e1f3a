package game

// Deck is the card pool a new game is seeded from.
type Deck struct {
	Setups     []Setup
	Punchlines []string
}

func (d Deck) Empty() bool {
	return len(d.Setups) == 0 || len(d.Punchlines) == 0
}

// Shuffled returns a copy of the deck with both piles shuffled.
func (d Deck) Shuffled(rng Rand) Deck {
	return Deck{
		Setups:     Shuffle(rng, d.Setups),
		Punchlines: Shuffle(rng, d.Punchlines),
	}
}

// StarterDeck is used when no card library is configured.
func StarterDeck() Deck {
	return Deck{
		Setups: []Setup{
			{Text: "Why did the chicken cross the road?", Type: SetupPickOne},
			{Text: "What's the secret ingredient in grandma's famous stew?", Type: SetupPickOne},
			{Text: "My therapist says I need to stop ____.", Type: SetupPickOne},
			{Text: "The wizard's only weakness: ____.", Type: SetupPickOne},
			{Text: "Breaking news: ____ has been elected mayor.", Type: SetupPickOne},
			{Text: "What got me kicked out of the library?", Type: SetupPickOne},
			{Text: "____ and ____: the buddy cop movie nobody asked for.", Type: SetupPickTwo},
			{Text: "Step one: ____. Step two: ____. Step three: profit.", Type: SetupPickTwo},
			{Text: "I never leave home without ____ and ____.", Type: SetupPickTwo},
			{Text: "The recipe calls for ____, ____, and a pinch of ____.", Type: SetupDrawTwoPickThree},
			{Text: "My perfect weekend: ____, then ____, then ____.", Type: SetupDrawTwoPickThree},
		},
		Punchlines: []string{
			"To get to the other side",
			"To avoid bad jokes",
			"To go to KFC",
			"To go to Cheeky Nando's with the lads",
			"To prove it wasn't chicken!",
			"It was feeling cocky",
			"A suspiciously damp sock",
			"Interpretive dance",
			"Three raccoons in a trench coat",
			"An unsolicited PowerPoint presentation",
			"The world's loudest whisper",
			"A tax audit",
			"Microwaving fish at work",
			"A motivational pigeon",
			"Aggressive yodelling",
			"Grandma's secret TikTok account",
			"An emotional support cactus",
			"Forgetting the lyrics halfway through",
			"A haunted vending machine",
			"Reply-all",
			"Socks with sandals",
			"A very confident toddler",
			"The last slice of pizza",
			"Pineapple, unironically",
			"A group chat with no chill",
			"Replying 'k'",
			"Competitive napping",
			"Free samples at the supermarket",
			"A dramatic slow clap",
			"Accidentally waving back at someone who wasn't waving at you",
			"An inflatable T-rex costume",
			"Running out of phone battery at 2%",
			"A goose with a grudge",
			"Stepping on a LEGO",
			"Existential dread",
			"The printer jamming again",
			"A lukewarm cup of coffee",
			"Dad jokes",
			"A knock-off superhero",
			"Mystery meat Monday",
			"An overly enthusiastic waiter",
			"Losing at Monopoly",
			"A sock puppet with opinions",
			"Crying at a car commercial",
			"Spontaneous karaoke",
			"The neighbour's leaf blower at 7am",
			"A single, perfect avocado",
			"A cursed family heirloom",
			"Hitting snooze eleven times",
			"A PowerPoint transition called 'Vortex'",
			"A sandwich with no filling",
			"An alarming amount of glitter",
			"Three shots of espresso",
			"A motivational speech from a potato",
			"Accidentally liking a photo from 2014",
			"Spilling soup on a first date",
			"Doing the worm",
			"A cat that only responds to French",
			"An ominous voicemail",
			"Wearing pyjamas to the shops",
		},
	}
}
