package drill

import "errors"

// Sentinel errors for the drill package.
var (
	ErrInvalidMode    = errors.New("drill: invalid mode")
	ErrAnswerRequired = errors.New("drill: current word must be answered before moving on")
)
