// Package phonetic fetches IPA transcriptions for words that arrive without
// one, using OpenAI's chat models.
package phonetic
