package audio

import (
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "English word",
			text:    "delicious",
			wantErr: false,
		},
		{
			name:    "phrase with punctuation",
			text:    "Uh-oh, cup, try again",
			wantErr: false,
		},
		{
			name:    "Chinese meaning",
			text:    "杯子",
			wantErr: false,
		},
		{
			name:    "empty text",
			text:    "",
			wantErr: true,
			errMsg:  "text cannot be empty",
		},
		{
			name:    "whitespace only",
			text:    "   \t\n",
			wantErr: true,
			errMsg:  "text cannot be empty",
		},
		{
			name:    "numbers only",
			text:    "12345",
			wantErr: true,
			errMsg:  "text must contain letters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != nil {
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateText() error = %v, want error containing %v", err.Error(), tt.errMsg)
				}
			}
		})
	}
}

func TestContainsHan(t *testing.T) {
	tests := map[string]bool{
		"cup":        false,
		"杯子":         true,
		"sci-fi 电影": true,
		"":           false,
	}
	for text, want := range tests {
		if got := ContainsHan(text); got != want {
			t.Errorf("ContainsHan(%q) = %v, want %v", text, got, want)
		}
	}
}
