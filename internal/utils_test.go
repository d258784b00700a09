package internal

import (
	"testing"
	"time"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"cup", "cup"},
		{"sci-fi movie", "sci-fi_movie"},
		{"Level H", "level_h"},
		{"杯子", "杯子"},
		{"a/b\\c", "a_b_c"},
		{"  v1.0 ", "v1.0"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.input); got != tt.expected {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestExportFileName(t *testing.T) {
	ts := time.Date(2024, 5, 1, 14, 3, 9, 0, time.UTC)
	if got := ExportFileName("H", ts); got != "missed_h_20240501_140309.csv" {
		t.Errorf("ExportFileName() = %q", got)
	}
}
