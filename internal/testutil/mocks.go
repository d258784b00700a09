package testutil

import (
	"context"
	"fmt"
	"sync"
)

// RecordingSpeaker records every text it is asked to speak.
type RecordingSpeaker struct {
	mu     sync.Mutex
	Err    error
	spoken []string
}

// Speak records the text and returns Err.
func (s *RecordingSpeaker) Speak(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, text)
	return s.Err
}

// Spoken returns the recorded texts in call order.
func (s *RecordingSpeaker) Spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}

// MockTranslator returns canned meanings.
type MockTranslator struct {
	Translations map[string]string
	Errors       map[string]error
	Calls        []string
}

// Translate returns the canned meaning for word.
func (m *MockTranslator) Translate(ctx context.Context, word string) (string, error) {
	m.Calls = append(m.Calls, word)

	if err, ok := m.Errors[word]; ok {
		return "", err
	}
	if translation, ok := m.Translations[word]; ok {
		return translation, nil
	}
	return fmt.Sprintf("mock translation of %s", word), nil
}

// MockPhonetic returns canned IPA transcriptions.
type MockPhonetic struct {
	IPA    map[string]string
	Errors map[string]error
	Calls  []string
}

// Fetch returns the canned IPA for word.
func (m *MockPhonetic) Fetch(ctx context.Context, word string) (string, error) {
	m.Calls = append(m.Calls, word)

	if err, ok := m.Errors[word]; ok {
		return "", err
	}
	if ipa, ok := m.IPA[word]; ok {
		return ipa, nil
	}
	return "/" + word + "/", nil
}
