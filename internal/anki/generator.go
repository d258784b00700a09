package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/vocadrill/internal/drill"
	"github.com/samber/lo"
)

// Card represents a single Anki flashcard
type Card struct {
	Word          string // Front of the card
	Syllables     string
	Pronunciation string
	Meaning       string
	Unit          string // Tag, e.g. "H::Unit_2"
}

// GeneratorOptions configures the Anki export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	IncludeHeaders bool   // Name the columns, as a #columns line when DeckName is set
	DeckName       string // Written as a #deck header line
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "missed_words.csv",
		IncludeHeaders: true,
		DeckName:       "Vocadrill",
	}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// AddWords adds one card per drill word. unitName returns the tag source
// for a word and may be nil.
func (g *Generator) AddWords(words []*drill.Word, unitName func(*drill.Word) string) {
	lo.ForEach(words, func(w *drill.Word, _ int) {
		g.AddCard(CardFromWord(w, unitName))
	})
}

// CardFromWord converts a drill word. A missing IPA is left blank.
func CardFromWord(w *drill.Word, unitName func(*drill.Word) string) Card {
	card := Card{
		Word:      w.Text,
		Syllables: w.Syllables,
		Meaning:   w.Meaning,
	}
	if w.HasPronunciation() {
		card.Pronunciation = w.Pronunciation
	}
	if unitName != nil {
		card.Unit = tag(unitName(w))
	} else {
		card.Unit = fmt.Sprintf("Unit_%d", w.Unit+1)
	}
	return card
}

// Anki tags are space separated.
func tag(s string) string {
	return strings.Join(strings.Fields(s), "_")
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	if dir := filepath.Dir(g.options.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	headers := []string{"Word", "Back", "Pronunciation", "Meaning", "Tags"}
	if g.options.DeckName != "" {
		if _, err := fmt.Fprintf(file, "#separator:comma\n#html:true\n#deck:%s\n#tags column:5\n", g.options.DeckName); err != nil {
			return fmt.Errorf("failed to write deck header: %w", err)
		}
		// Anki would import a plain header row as a note.
		if g.options.IncludeHeaders {
			if _, err := fmt.Fprintf(file, "#columns:%s\n", strings.Join(headers, ",")); err != nil {
				return fmt.Errorf("failed to write headers: %w", err)
			}
		}
	}

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders && g.options.DeckName == "" {
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		record := []string{
			card.Word,
			g.formatBack(card),
			card.Pronunciation,
			card.Meaning,
			card.Unit,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatBack renders the answer side of the card as HTML.
func (g *Generator) formatBack(card Card) string {
	parts := lo.Filter([]string{card.Syllables, card.Pronunciation, card.Meaning}, func(s string, _ int) bool {
		return s != ""
	})
	return strings.Join(parts, "<br>")
}

// Stats returns statistics about the card collection
func (g *Generator) Stats() (totalCards, withPronunciation, withMeaning int) {
	totalCards = len(g.cards)

	for _, card := range g.cards {
		if card.Pronunciation != "" {
			withPronunciation++
		}
		if card.Meaning != "" {
			withMeaning++
		}
	}

	return
}
