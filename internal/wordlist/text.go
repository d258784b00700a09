package wordlist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TextSource reads level<ID>.txt word lists from a directory.
//
// Supported line formats:
//   - "# Unit 2" starts a new unit
//   - "word" (meaning is filled in later)
//   - "word = meaning"
//   - "word | syllables | pronunciation | meaning"
//
// Words before the first unit header go into "Unit 1". Blank lines and lines
// with an empty word are ignored.
type TextSource struct {
	Dir string
}

// NewTextSource creates a text source for the given directory.
func NewTextSource(dir string) *TextSource {
	return &TextSource{Dir: dir}
}

// Path returns the file that holds the given level.
func (s *TextSource) Path(levelID string) string {
	return filepath.Join(s.Dir, fmt.Sprintf("level%s.txt", levelID))
}

// Load reads one text level.
func (s *TextSource) Load(ctx context.Context, levelID string) (LevelData, error) {
	if err := ctx.Err(); err != nil {
		return LevelData{}, err
	}
	return ReadTextFile(s.Path(levelID), levelID)
}

// ReadTextFile reads a plain text word list as the given level.
func ReadTextFile(path, levelID string) (LevelData, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LevelData{}, fmt.Errorf("%w: %s", ErrLevelNotFound, path)
		}
		return LevelData{}, fmt.Errorf("failed to read word list: %w", err)
	}
	defer f.Close()

	return ParseText(f, levelID)
}

// ParseText parses a plain text word list.
func ParseText(r io.Reader, levelID string) (LevelData, error) {
	data := LevelData{Level: levelID}
	var current *UnitData

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			data.Units = append(data.Units, UnitData{Name: strings.TrimSpace(strings.TrimPrefix(line, "#"))})
			current = &data.Units[len(data.Units)-1]
			continue
		}

		rec, ok := parseLine(line)
		if !ok {
			continue
		}
		if current == nil {
			data.Units = append(data.Units, UnitData{Name: "Unit 1"})
			current = &data.Units[len(data.Units)-1]
		}
		current.Words = append(current.Words, rec)
	}
	if err := scanner.Err(); err != nil {
		return LevelData{}, fmt.Errorf("failed to scan word list: %w", err)
	}
	if err := data.Validate(); err != nil {
		return LevelData{}, err
	}
	return data, nil
}

func parseLine(line string) (WordRecord, bool) {
	if strings.Contains(line, "|") {
		parts := strings.SplitN(line, "|", 4)
		for len(parts) < 4 {
			parts = append(parts, "")
		}
		rec := WordRecord{
			Word:          strings.TrimSpace(parts[0]),
			Syllables:     strings.TrimSpace(parts[1]),
			Pronunciation: strings.TrimSpace(parts[2]),
			Meaning:       strings.TrimSpace(parts[3]),
		}
		return rec, rec.Word != ""
	}

	if word, meaning, found := strings.Cut(line, "="); found {
		rec := WordRecord{Word: strings.TrimSpace(word), Meaning: strings.TrimSpace(meaning)}
		return rec, rec.Word != ""
	}

	return WordRecord{Word: line}, true
}
