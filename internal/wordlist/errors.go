package wordlist

import "errors"

var (
	ErrInvalidLevelID = errors.New("wordlist: invalid level id")
	ErrLevelNotFound  = errors.New("wordlist: level not found")
	ErrInvalidLevel   = errors.New("wordlist: invalid level data")
	ErrUnknownUnit    = errors.New("wordlist: unknown unit")
)
