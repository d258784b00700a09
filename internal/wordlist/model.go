package wordlist

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"codeberg.org/snonux/vocadrill/internal/drill"
)

// DefaultLevelID is loaded when a requested level cannot be read.
const DefaultLevelID = "H"

// WordRecord is one word as stored in a level file.
type WordRecord struct {
	Word          string `json:"word" validate:"required"`
	Syllables     string `json:"syllables,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Meaning       string `json:"meaning,omitempty"`
}

// UnitData is one unit as stored in a level file.
type UnitData struct {
	Name  string       `json:"unit"`
	Words []WordRecord `json:"words" validate:"dive"`
}

// LevelData is the on-disk shape of a level.
type LevelData struct {
	Level       string     `json:"level" validate:"required"`
	Version     string     `json:"version,omitempty"`
	LastUpdated string     `json:"lastUpdated,omitempty"`
	Units       []UnitData `json:"units" validate:"dive"`
}

var validate = validator.New()

// Validate checks the level data for missing ids and empty words.
func (d LevelData) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	return nil
}

// Record converts a stored word into the drill's raw record.
func (r WordRecord) Record() drill.Record {
	return drill.Record{
		Text:          strings.TrimSpace(r.Word),
		Syllables:     r.Syllables,
		Pronunciation: r.Pronunciation,
		Meaning:       r.Meaning,
	}
}

// Unit is a named group of words inside a level.
type Unit struct {
	Index int
	Name  string
	Words []*drill.Word
}

// Number is the 1-based unit number shown to the learner.
func (u *Unit) Number() int { return u.Index + 1 }

// Level is a loaded vocabulary level with its unit selection.
type Level struct {
	ID          string
	Version     string
	LastUpdated string
	Units       []*Unit

	selected []int
}

// NewLevel builds a level from stored data with every unit selected. Units
// without a name are called "Unit n".
func NewLevel(data LevelData) *Level {
	l := &Level{
		ID:          data.Level,
		Version:     data.Version,
		LastUpdated: data.LastUpdated,
	}
	for i, ud := range data.Units {
		name := ud.Name
		if name == "" {
			name = fmt.Sprintf("Unit %d", i+1)
		}
		l.Units = append(l.Units, &Unit{
			Index: i,
			Name:  name,
			Words: lo.Map(ud.Words, func(r WordRecord, _ int) *drill.Word {
				return drill.NewWord(r.Record(), i)
			}),
		})
	}
	l.SelectAll()
	return l
}

// Data converts the level back into its stored shape.
func (l *Level) Data() LevelData {
	return LevelData{
		Level:       l.ID,
		Version:     l.Version,
		LastUpdated: l.LastUpdated,
		Units: lo.Map(l.Units, func(u *Unit, _ int) UnitData {
			return UnitData{
				Name: u.Name,
				Words: lo.Map(u.Words, func(w *drill.Word, _ int) WordRecord {
					pron := w.Pronunciation
					if !w.HasPronunciation() {
						pron = ""
					}
					return WordRecord{Word: w.Text, Syllables: w.Syllables, Pronunciation: pron, Meaning: w.Meaning}
				}),
			}
		}),
	}
}

// SelectedWords returns the words of the selected units, in unit order.
func (l *Level) SelectedWords() []*drill.Word {
	return lo.FlatMap(l.selected, func(i int, _ int) []*drill.Word {
		return l.Units[i].Words
	})
}

// AllWords returns every word of the level.
func (l *Level) AllWords() []*drill.Word {
	return lo.FlatMap(l.Units, func(u *Unit, _ int) []*drill.Word { return u.Words })
}

// SelectAll selects every unit.
func (l *Level) SelectAll() {
	l.selected = lo.Map(l.Units, func(u *Unit, _ int) int { return u.Index })
}

// DeselectAll clears the selection.
func (l *Level) DeselectAll() {
	l.selected = nil
}

// ToggleUnit flips the selection of a unit and returns its new state.
func (l *Level) ToggleUnit(index int) (bool, error) {
	if !l.hasUnit(index) {
		return false, fmt.Errorf("%w: %d", ErrUnknownUnit, index+1)
	}
	if l.IsSelected(index) {
		l.selected = lo.Without(l.selected, index)
		return false, nil
	}
	l.setSelection(append(l.selected, index))
	return true, nil
}

// SelectUnits replaces the selection with the given unit indices. An unknown
// index rejects the whole selection.
func (l *Level) SelectUnits(indices []int) error {
	for _, i := range indices {
		if !l.hasUnit(i) {
			return fmt.Errorf("%w: %d", ErrUnknownUnit, i+1)
		}
	}
	l.setSelection(indices)
	return nil
}

// IsSelected reports whether a unit is selected.
func (l *Level) IsSelected(index int) bool {
	return lo.Contains(l.selected, index)
}

// AllSelected reports whether the level has units and all are selected.
func (l *Level) AllSelected() bool {
	return len(l.Units) > 0 && len(l.selected) == len(l.Units)
}

// SelectedUnits returns the selected unit indices in ascending order.
func (l *Level) SelectedUnits() []int {
	return append([]int(nil), l.selected...)
}

// SelectedUnitNumbers returns the 1-based numbers of the selected units.
func (l *Level) SelectedUnitNumbers() []int {
	return lo.Map(l.selected, func(i int, _ int) int { return i + 1 })
}

// WordCount returns the number of words across all units.
func (l *Level) WordCount() int {
	return lo.SumBy(l.Units, func(u *Unit) int { return len(u.Words) })
}

func (l *Level) hasUnit(index int) bool {
	return index >= 0 && index < len(l.Units)
}

func (l *Level) setSelection(indices []int) {
	sel := lo.Uniq(indices)
	slices.Sort(sel)
	l.selected = sel
}
