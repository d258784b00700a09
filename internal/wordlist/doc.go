// Package wordlist loads vocabulary levels from JSON level files, plain text
// lists or a SQLite word database. A level groups its words into units; the
// selected units are flattened into the drill words for a session. Manager
// caches loaded levels and falls back to the default level when a requested
// one cannot be read.
package wordlist
