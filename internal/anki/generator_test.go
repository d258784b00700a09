package anki

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/vocadrill/internal/drill"
)

func TestDefaultGeneratorOptions(t *testing.T) {
	opts := DefaultGeneratorOptions()

	if opts.OutputPath != "missed_words.csv" {
		t.Errorf("Expected output path 'missed_words.csv', got '%s'", opts.OutputPath)
	}
	if !opts.IncludeHeaders {
		t.Error("Expected IncludeHeaders to be true")
	}
	if opts.DeckName != "Vocadrill" {
		t.Errorf("Expected deck name 'Vocadrill', got '%s'", opts.DeckName)
	}
}

func TestNewGenerator(t *testing.T) {
	gen := NewGenerator(nil)
	if gen == nil {
		t.Fatal("NewGenerator returned nil")
	}
	if gen.options == nil {
		t.Error("Generator options should not be nil")
	}

	gen = NewGenerator(&GeneratorOptions{OutputPath: "custom.csv"})
	if gen.options.OutputPath != "custom.csv" {
		t.Errorf("Expected custom output path, got '%s'", gen.options.OutputPath)
	}
}

func TestCardFromWord(t *testing.T) {
	withIPA := drill.NewWord(drill.Record{Text: "sci-fi movie", Syllables: "sci-fi mov-ie", Pronunciation: "/ˈsaɪfaɪ ˈmuːvi/", Meaning: "科幻电影"}, 0)
	withoutIPA := drill.NewWord(drill.Record{Text: "spatula", Meaning: "锅铲"}, 1)

	tests := []struct {
		name     string
		word     *drill.Word
		unitName func(*drill.Word) string
		want     Card
	}{
		{
			name: "default unit tag",
			word: withIPA,
			want: Card{Word: "sci-fi movie", Syllables: "sci-fi mov-ie", Pronunciation: "/ˈsaɪfaɪ ˈmuːvi/", Meaning: "科幻电影", Unit: "Unit_1"},
		},
		{
			name:     "named unit, no IPA",
			word:     withoutIPA,
			unitName: func(*drill.Word) string { return "H::Kitchen Tools" },
			want:     Card{Word: "spatula", Meaning: "锅铲", Unit: "H::Kitchen_Tools"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CardFromWord(tt.word, tt.unitName); got != tt.want {
				t.Errorf("CardFromWord() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFormatBack(t *testing.T) {
	gen := NewGenerator(nil)

	tests := []struct {
		name     string
		card     Card
		expected string
	}{
		{"empty", Card{Word: "cup"}, ""},
		{"meaning only", Card{Meaning: "杯子"}, "杯子"},
		{"all", Card{Syllables: "ov-en", Pronunciation: "/ˈʌvn/", Meaning: "烤箱"}, "ov-en<br>/ˈʌvn/<br>烤箱"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gen.formatBack(tt.card); got != tt.expected {
				t.Errorf("formatBack() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGenerateCSV(t *testing.T) {
	tempDir := t.TempDir()
	outputPath := filepath.Join(tempDir, "export", "missed.csv")

	gen := NewGenerator(&GeneratorOptions{
		OutputPath:     outputPath,
		IncludeHeaders: true,
		DeckName:       "Level H",
	})
	gen.AddWords([]*drill.Word{
		drill.NewWord(drill.Record{Text: "actor", Pronunciation: "/ˈæktər/", Meaning: "演员"}, 0),
		drill.NewWord(drill.Record{Text: "oven"}, 1),
	}, nil)

	if err := gen.GenerateCSV(); err != nil {
		t.Fatalf("GenerateCSV() error = %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(content), "#separator:comma\n") {
		t.Errorf("missing Anki header lines:\n%s", content)
	}
	if !strings.Contains(string(content), "#deck:Level H\n") {
		t.Errorf("missing deck line:\n%s", content)
	}
	if !strings.Contains(string(content), "#columns:Word,Back,Pronunciation,Meaning,Tags\n") {
		t.Errorf("missing columns line:\n%s", content)
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.Comment = '#'
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}

	// Every non-comment row becomes a note, so no header row may appear.
	if len(records) != 2 {
		t.Fatalf("Expected 2 records (one per card), got %d: %v", len(records), records)
	}
	want := []string{"actor", "/ˈæktər/<br>演员", "/ˈæktər/", "演员", "Unit_1"}
	for i := range want {
		if records[0][i] != want[i] {
			t.Errorf("record[0][%d] = %q, want %q", i, records[0][i], want[i])
		}
	}
	if records[1][0] != "oven" || records[1][2] != "" || records[1][4] != "Unit_2" {
		t.Errorf("unexpected second record: %v", records[1])
	}
}

func TestGenerateCSV_HeaderRowWithoutDeck(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "plain.csv")
	gen := NewGenerator(&GeneratorOptions{OutputPath: outputPath, IncludeHeaders: true})
	gen.AddCard(Card{Word: "cup"})

	if err := gen.GenerateCSV(); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(content); got != "Word,Back,Pronunciation,Meaning,Tags\ncup,,,,\n" {
		t.Errorf("content = %q", got)
	}
}

func TestGenerateCSV_NoHeaders(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "plain.csv")
	gen := NewGenerator(&GeneratorOptions{OutputPath: outputPath})
	gen.AddCard(Card{Word: "cup", Meaning: "杯子"})

	if err := gen.GenerateCSV(); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(content); got != "cup,杯子,,杯子,\n" {
		t.Errorf("content = %q", got)
	}
}

func TestGenerateCSV_BadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	gen := NewGenerator(&GeneratorOptions{OutputPath: filepath.Join(blocker, "out.csv")})
	if err := gen.GenerateCSV(); err == nil {
		t.Error("expected error when the parent is a file")
	}
}

func TestStats(t *testing.T) {
	gen := NewGenerator(nil)
	gen.AddCard(Card{Word: "cup", Pronunciation: "/kʌp/", Meaning: "杯子"})
	gen.AddCard(Card{Word: "spatula", Meaning: "锅铲"})
	gen.AddCard(Card{Word: "oven"})

	total, withIPA, withMeaning := gen.Stats()
	if total != 3 || withIPA != 1 || withMeaning != 2 {
		t.Errorf("Stats() = %d, %d, %d; want 3, 1, 2", total, withIPA, withMeaning)
	}
}
