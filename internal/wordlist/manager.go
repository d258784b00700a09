package wordlist

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Manager loads levels from a source and keeps them cached.
type Manager struct {
	src     Source
	log     logrus.FieldLogger
	levels  map[string]*Level
	current string
}

// NewManager creates a manager. A nil logger discards log output.
func NewManager(src Source, log logrus.FieldLogger) *Manager {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Manager{
		src:    src,
		log:    log,
		levels: make(map[string]*Level),
	}
}

// Load makes the given level current, reading it from the source unless it
// is cached. When the source fails and the default level has not been loaded
// yet, the default level is loaded instead.
func (m *Manager) Load(ctx context.Context, levelID string) (*Level, error) {
	levelID = strings.TrimSpace(levelID)
	if levelID == "" {
		return nil, ErrInvalidLevelID
	}

	if lvl, ok := m.SetCurrent(levelID); ok {
		m.log.WithField("level", levelID).Debug("level already loaded, using cached data")
		return lvl, nil
	}

	data, err := m.src.Load(ctx, levelID)
	if err != nil {
		m.log.WithError(err).WithField("level", levelID).Error("failed to load level")
		if levelID != DefaultLevelID && !m.IsLoaded(DefaultLevelID) {
			m.log.WithField("level", DefaultLevelID).Info("loading fallback level")
			return m.Load(ctx, DefaultLevelID)
		}
		return nil, fmt.Errorf("failed to load level %s: %w", levelID, err)
	}

	if data.Level != levelID {
		m.log.WithFields(logrus.Fields{
			"file":      data.Level,
			"requested": levelID,
		}).Warn("level in file does not match requested level, using requested level")
		data.Level = levelID
	}

	lvl := NewLevel(data)
	m.levels[levelID] = lvl
	m.current = levelID
	m.log.WithFields(logrus.Fields{
		"level":        levelID,
		"version":      data.Version,
		"last_updated": data.LastUpdated,
		"words":        lvl.WordCount(),
	}).Info("vocabulary level loaded")
	return lvl, nil
}

// Current returns the current level, or nil when none is loaded.
func (m *Manager) Current() *Level {
	if m.current == "" {
		return nil
	}
	return m.levels[m.current]
}

// IsLoaded reports whether a level is cached.
func (m *Manager) IsLoaded(levelID string) bool {
	_, ok := m.levels[levelID]
	return ok
}

// SetCurrent switches to an already loaded level. It reports false and
// leaves the current level alone when levelID is not cached.
func (m *Manager) SetCurrent(levelID string) (*Level, bool) {
	lvl, ok := m.levels[levelID]
	if !ok {
		return nil, false
	}
	m.current = levelID
	return lvl, true
}
