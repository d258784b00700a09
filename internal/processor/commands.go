package processor

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"codeberg.org/snonux/vocadrill/internal/wordlist"
)

// Command is a line starting with ':' typed at the answer prompt.
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits a command line. ok is false for ordinary answers.
func ParseCommand(line string) (Command, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		return Command{}, false
	}
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return Command{}, false
	}
	return Command{Name: strings.ToLower(fields[0]), Args: fields[1:]}, true
}

// Arg returns the i-th argument or "".
func (c Command) Arg(i int) string {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return ""
}

// ParseToggle accepts on/off style words.
func ParseToggle(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
}

// ApplyUnitSelection selects units of a level from "all", "none" or a list of
// 1-based unit numbers like "1,3" or "1 3".
func ApplyUnitSelection(level *wordlist.Level, sel string) error {
	switch strings.ToLower(strings.TrimSpace(sel)) {
	case "", "all":
		level.SelectAll()
		return nil
	case "none":
		level.DeselectAll()
		return nil
	}

	parts := strings.FieldsFunc(sel, func(r rune) bool { return r == ',' || r == ' ' })
	indices := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid unit number %q", p)
		}
		indices = append(indices, n-1)
	}
	return level.SelectUnits(indices)
}

var helpLines = []string{
	":next                   skip a revealed or unanswerable word",
	":mode <name>            switch to review, dictation or listening",
	":shuffle on|off         shuffle the remaining words",
	":scramble on|off        scramble letters in review mode",
	":units all|none|1,3     choose the units to drill",
	":level <id>             switch to another level",
	":speak                  hear the current word again",
	":progress               show progress",
	":missed                 list the words missed so far",
	":help                   show this help",
	":quit                   leave",
}

// CommandNames returns the names of all interactive commands.
func CommandNames() []string {
	names := lo.Map(helpLines, func(l string, _ int) string {
		return strings.TrimPrefix(strings.Fields(l)[0], ":")
	})
	slices.Sort(names)
	return names
}
