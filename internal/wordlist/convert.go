package wordlist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadAny reads a level from a .json or plain text file. levelID overrides
// the ID of a JSON file and names a text list; when empty, a text list takes
// its ID from a level<ID>.txt file name or DefaultLevelID.
func ReadAny(path, levelID string) (LevelData, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := ReadLevelFile(path)
		if err != nil {
			return LevelData{}, err
		}
		if levelID != "" {
			data.Level = levelID
		}
		return data, nil
	}
	if levelID == "" {
		levelID = levelIDFromName(path)
	}
	return ReadTextFile(path, levelID)
}

func levelIDFromName(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if id, ok := strings.CutPrefix(name, "level"); ok && id != "" {
		return id
	}
	return DefaultLevelID
}

// Convert stores the level read from in into the SQLite database at out,
// creating the database and its directory when missing.
func Convert(ctx context.Context, in, out, levelID string) (LevelData, error) {
	data, err := ReadAny(in, levelID)
	if err != nil {
		return LevelData{}, err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return LevelData{}, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := OpenSQLite(out)
	if err != nil {
		return LevelData{}, err
	}
	defer db.Close()

	if err := db.Save(ctx, data); err != nil {
		return LevelData{}, fmt.Errorf("failed to store level %s: %w", data.Level, err)
	}
	return data, nil
}
