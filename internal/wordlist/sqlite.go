package wordlist

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSource stores levels in a SQLite word database.
type SQLiteSource struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) a word database.
func OpenSQLite(path string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word database: %w", err)
	}
	s := &SQLiteSource{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

func (s *SQLiteSource) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS levels (
			id text PRIMARY KEY,
			version text NOT NULL DEFAULT '',
			last_updated text NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS units (
			level_id text NOT NULL,
			idx integer NOT NULL,
			name text NOT NULL,
			PRIMARY KEY (level_id, idx)
		)`,
		`CREATE TABLE IF NOT EXISTS words (
			level_id text NOT NULL,
			unit_idx integer NOT NULL,
			pos integer NOT NULL,
			word text NOT NULL,
			syllables text NOT NULL DEFAULT '',
			pronunciation text NOT NULL DEFAULT '',
			meaning text NOT NULL DEFAULT '',
			PRIMARY KEY (level_id, unit_idx, pos)
		)`,
	}
	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Levels returns the ids of all stored levels.
func (s *SQLiteSource) Levels(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM levels ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan level: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Load reads one level with its units and words.
func (s *SQLiteSource) Load(ctx context.Context, levelID string) (LevelData, error) {
	data := LevelData{Level: levelID}
	err := s.db.QueryRowContext(ctx,
		`SELECT version, last_updated FROM levels WHERE id = ?`, levelID,
	).Scan(&data.Version, &data.LastUpdated)
	if err == sql.ErrNoRows {
		return LevelData{}, fmt.Errorf("%w: %s", ErrLevelNotFound, levelID)
	}
	if err != nil {
		return LevelData{}, fmt.Errorf("failed to read level: %w", err)
	}

	units, err := s.db.QueryContext(ctx,
		`SELECT name FROM units WHERE level_id = ? ORDER BY idx`, levelID)
	if err != nil {
		return LevelData{}, fmt.Errorf("failed to read units: %w", err)
	}
	for units.Next() {
		var u UnitData
		if err := units.Scan(&u.Name); err != nil {
			units.Close()
			return LevelData{}, fmt.Errorf("failed to scan unit: %w", err)
		}
		data.Units = append(data.Units, u)
	}
	units.Close()
	if err := units.Err(); err != nil {
		return LevelData{}, fmt.Errorf("failed to read units: %w", err)
	}

	words, err := s.db.QueryContext(ctx,
		`SELECT unit_idx, word, syllables, pronunciation, meaning
		 FROM words WHERE level_id = ? ORDER BY unit_idx, pos`, levelID)
	if err != nil {
		return LevelData{}, fmt.Errorf("failed to read words: %w", err)
	}
	defer words.Close()
	for words.Next() {
		var idx int
		var w WordRecord
		if err := words.Scan(&idx, &w.Word, &w.Syllables, &w.Pronunciation, &w.Meaning); err != nil {
			return LevelData{}, fmt.Errorf("failed to scan word: %w", err)
		}
		if idx < 0 || idx >= len(data.Units) {
			return LevelData{}, fmt.Errorf("%w: word %q references unit %d", ErrInvalidLevel, w.Word, idx+1)
		}
		data.Units[idx].Words = append(data.Units[idx].Words, w)
	}
	if err := words.Err(); err != nil {
		return LevelData{}, fmt.Errorf("failed to read words: %w", err)
	}
	return data, nil
}

// Save replaces a stored level in a single transaction.
func (s *SQLiteSource) Save(ctx context.Context, data LevelData) error {
	if err := data.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"words", "units"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE level_id = ?`, data.Level); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO levels (id, version, last_updated) VALUES (?, ?, ?)`,
		data.Level, data.Version, data.LastUpdated,
	); err != nil {
		return fmt.Errorf("failed to insert level: %w", err)
	}

	for i, u := range data.Units {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO units (level_id, idx, name) VALUES (?, ?, ?)`,
			data.Level, i, u.Name,
		); err != nil {
			return fmt.Errorf("failed to insert unit: %w", err)
		}
		for pos, w := range u.Words {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO words (level_id, unit_idx, pos, word, syllables, pronunciation, meaning)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				data.Level, i, pos, w.Word, w.Syllables, w.Pronunciation, w.Meaning,
			); err != nil {
				return fmt.Errorf("failed to insert word %q: %w", w.Word, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit level: %w", err)
	}
	return nil
}
