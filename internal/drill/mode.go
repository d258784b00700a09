package drill

import (
	"encoding"
	"fmt"
	"strings"
)

// Mode is the quiz mode of a session.
type Mode int

const (
	Review    Mode = iota + 1 // Word shown, learner types it.
	Dictation                 // IPA shown, learner types the word.
	Listening                 // Audio only, learner types the meaning.
)

var (
	modeNames  = [...]string{Review: "review", Dictation: "dictation", Listening: "listening"}
	modeTitles = [...]string{Review: "Review", Dictation: "Dictation", Listening: "Listening"}
)

var (
	_ fmt.Stringer             = Mode(0)
	_ encoding.TextMarshaler   = Mode(0)
	_ encoding.TextUnmarshaler = (*Mode)(nil)
)

// Modes returns all modes in menu order.
func Modes() []Mode {
	return []Mode{Review, Dictation, Listening}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m >= Review && m <= Listening
}

// String returns the lower-case mode name, or "Mode(n)" for invalid values.
func (m Mode) String() string {
	if m.Valid() {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Title returns the display name of the mode ("Review", "Dictation", "Listening").
func (m Mode) Title() string {
	if m.Valid() {
		return modeTitles[m]
	}
	return ""
}

// CountsAttempts reports whether misses in this mode count toward the reveal threshold.
func (m Mode) CountsAttempts() bool {
	switch m {
	case Dictation, Listening:
		return true
	case Review:
		return false
	default:
		return false
	}
}

// ParseMode parses a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Modes() {
		if modeNames[m] == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
