package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SampleLevelJSON is a small level "H" with two units. "spatula" has no
// pronunciation and "oven" no meaning.
const SampleLevelJSON = `{
  "level": "H",
  "version": "1.0",
  "lastUpdated": "2024-05-01",
  "units": [
    {
      "unit": "Unit 1",
      "words": [
        {"word": "sci-fi movie", "syllables": "sci / fi · mo / vie", "pronunciation": "/ˈsaɪ.faɪ ˈmuːvi/", "meaning": "科幻电影"},
        {"word": "actor", "syllables": "ac / tor", "pronunciation": "/ˈæktər/", "meaning": "男演员"},
        {"word": "comedy", "syllables": "co / me / dy", "pronunciation": "/ˈkɒmədi/", "meaning": "喜剧"}
      ]
    },
    {
      "unit": "Unit 2",
      "words": [
        {"word": "cup", "syllables": "cup", "pronunciation": "/kʌp/", "meaning": "杯子"},
        {"word": "spatula", "syllables": "spa / tu / la", "meaning": "锅铲"},
        {"word": "oven", "syllables": "o / ven", "pronunciation": "/ˈʌvən/"}
      ]
    }
  ]
}
`

// SampleLevelText is a plain text word list with two units.
const SampleLevelText = `cup = 杯子
knife | knife | /naɪf/ | 刀

# Unit 2
stove = 炉子
teaspoon
= ignored
`

// CreateTestDirectory creates a temporary directory with the usual
// subdirectories.
func CreateTestDirectory(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	for _, dir := range []string{"levels", "cache", "output"} {
		path := filepath.Join(tempDir, dir)
		if err := os.MkdirAll(path, 0755); err != nil {
			t.Fatalf("Failed to create test directory %s: %v", path, err)
		}
	}
	return tempDir
}

// CreateTestFile creates a test file with content.
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// WriteLevelFixture writes SampleLevelJSON as level<id>.json into dir with
// the level field set to id, and returns the file path.
func WriteLevelFixture(t *testing.T, dir, id string) string {
	t.Helper()

	content := strings.Replace(SampleLevelJSON, `"level": "H"`, fmt.Sprintf("%q: %q", "level", id), 1)
	path := filepath.Join(dir, fmt.Sprintf("level%s.json", id))
	CreateTestFile(t, path, []byte(content))
	return path
}

// AssertFileExists checks if a file exists.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContains checks if a file contains a substring.
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	if !strings.Contains(string(content), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}
