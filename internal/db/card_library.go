package db

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"punchline/internal/game"

	"gorm.io/gorm"
)

const (
	CardKindSetup     = "setup"
	CardKindPunchline = "punchline"
)

type CardLibrary struct {
	ID        uint      `gorm:"primaryKey"`
	Kind      string    `gorm:"size:16;not null;uniqueIndex:idx_card_library_kind_text"`
	Type      string    `gorm:"size:32;not null;default:''"`
	Text      string    `gorm:"size:280;not null;uniqueIndex:idx_card_library_kind_text"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// LoadCardLibrary reads cards from a CSV file and upserts them into the card_libraries table.
func LoadCardLibrary(conn *gorm.DB, path string) (int, error) {
	if conn == nil {
		return 0, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	records, err := ReadCards(file)
	if err != nil {
		return 0, err
	}
	inserted := 0
	for _, record := range records {
		entry := record
		if err := conn.Where(CardLibrary{Kind: entry.Kind, Text: entry.Text}).
			Assign(CardLibrary{Type: entry.Type}).
			FirstOrCreate(&entry).Error; err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// ReadCards parses kind,type,text rows. The first row is a header. Rows with an
// unknown kind, or setups with an unknown type, are rejected.
func ReadCards(r io.Reader) ([]CardLibrary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var records []CardLibrary
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}
		kind := strings.ToLower(strings.TrimSpace(row[0]))
		setupType := strings.ToUpper(strings.TrimSpace(row[1]))
		text := strings.TrimSpace(row[2])
		if text == "" {
			continue
		}
		switch kind {
		case CardKindSetup:
			if !game.SetupType(setupType).Valid() {
				return nil, fmt.Errorf("row %d: unknown setup type %q", i+1, row[1])
			}
		case CardKindPunchline:
			setupType = ""
		default:
			return nil, fmt.Errorf("row %d: unknown card kind %q", i+1, row[0])
		}
		records = append(records, CardLibrary{Kind: kind, Type: setupType, Text: text})
	}
	return records, nil
}

// LoadDeck builds a game deck from the card library. An empty library yields
// an empty deck.
func LoadDeck(ctx context.Context, conn *gorm.DB) (game.Deck, error) {
	var cards []CardLibrary
	if err := conn.WithContext(ctx).Order("id").Find(&cards).Error; err != nil {
		return game.Deck{}, err
	}
	return DeckFromCards(cards), nil
}

func DeckFromCards(cards []CardLibrary) game.Deck {
	var deck game.Deck
	for _, card := range cards {
		switch card.Kind {
		case CardKindSetup:
			deck.Setups = append(deck.Setups, game.Setup{Text: card.Text, Type: game.SetupType(card.Type)})
		case CardKindPunchline:
			deck.Punchlines = append(deck.Punchlines, card.Text)
		}
	}
	return deck
}
