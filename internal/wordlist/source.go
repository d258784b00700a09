package wordlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source loads the stored data of a level by id.
type Source interface {
	Load(ctx context.Context, levelID string) (LevelData, error)
}

// DirSource reads level<ID>.json files from a directory.
type DirSource struct {
	Dir string
}

// NewDirSource creates a source for the given directory.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

// Path returns the file that holds the given level.
func (s *DirSource) Path(levelID string) string {
	return filepath.Join(s.Dir, fmt.Sprintf("level%s.json", levelID))
}

// Load reads and validates one level file.
func (s *DirSource) Load(ctx context.Context, levelID string) (LevelData, error) {
	if err := ctx.Err(); err != nil {
		return LevelData{}, err
	}
	return ReadLevelFile(s.Path(levelID))
}

// Save writes a level file, creating the directory if needed.
func (s *DirSource) Save(data LevelData) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create level directory: %w", err)
	}
	return WriteLevelFile(s.Path(data.Level), data)
}

// ReadLevelFile reads a JSON level file.
func ReadLevelFile(path string) (LevelData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LevelData{}, fmt.Errorf("%w: %s", ErrLevelNotFound, path)
		}
		return LevelData{}, fmt.Errorf("failed to read level file: %w", err)
	}

	var data LevelData
	if err := json.Unmarshal(content, &data); err != nil {
		return LevelData{}, fmt.Errorf("%w: %s: %v", ErrInvalidLevel, path, err)
	}
	if err := data.Validate(); err != nil {
		return LevelData{}, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// WriteLevelFile writes a level as indented JSON.
func WriteLevelFile(path string, data LevelData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode level: %w", err)
	}
	if err := os.WriteFile(path, append(content, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write level file: %w", err)
	}
	return nil
}

// ChainSource tries each source in order and returns the first level found.
type ChainSource []Source

// Load returns the first result that is not ErrLevelNotFound.
func (c ChainSource) Load(ctx context.Context, levelID string) (LevelData, error) {
	err := fmt.Errorf("%w: %s", ErrLevelNotFound, levelID)
	for _, src := range c {
		data, loadErr := src.Load(ctx, levelID)
		if loadErr == nil {
			return data, nil
		}
		if !errors.Is(loadErr, ErrLevelNotFound) {
			return LevelData{}, loadErr
		}
		err = loadErr
	}
	return LevelData{}, err
}

// NewDataDirSource reads level<ID>.json and falls back to level<ID>.txt.
func NewDataDirSource(dir string) ChainSource {
	return ChainSource{NewDirSource(dir), NewTextSource(dir)}
}
