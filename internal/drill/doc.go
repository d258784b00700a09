// Package drill implements the practice session: the word pool with its
// shuffle and scramble transforms, the review queue of missed words, and the
// session state machine that validates answers per mode and moves between the
// primary pass and review passes. The package performs no I/O; delays are
// returned to the caller as Action values.
package drill
