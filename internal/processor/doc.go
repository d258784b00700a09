// Package processor runs the interactive drill in a terminal. It loads a
// level through the wordlist package, optionally fills in missing IPA and
// meanings, feeds the selected words to a drill.Session and turns the
// session's outcomes into printed feedback, speech and delayed follow-up
// actions. Lines starting with ':' are commands; everything else is an
// answer. Missed words can be exported as an Anki CSV file on exit.
package processor
