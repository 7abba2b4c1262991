package provider

import "sync"

// MockDictionary is an in-memory dictionary for tests. It records how often
// each method is called.
type MockDictionary struct {
	mu           sync.Mutex
	Translations map[string]string     // lowercase English -> Arabic
	Morphology   map[string]MorphEntry // surface form -> entry
	TranslateN   int                   // calls to Translate
	MorphN       int                   // calls to Morph
}

// NewMockDictionary creates a mock with one verb and its morphology.
func NewMockDictionary() *MockDictionary {
	return &MockDictionary{
		Translations: map[string]string{
			"go": "ذهب",
		},
		Morphology: map[string]MorphEntry{
			"ذهب": {Pattern: "فعل ماضٍ", Root: "ذ-ه-ب", Type: "verb", Paraphrase: "went"},
		},
	}
}

// Translate implements Dictionary.
func (m *MockDictionary) Translate(word string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TranslateN++
	ar, ok := m.Translations[word]
	return ar, ok
}

// Morph implements Dictionary.
func (m *MockDictionary) Morph(token string) (MorphEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MorphN++
	e, ok := m.Morphology[token]
	return e, ok
}

// Calls returns the number of Translate and Morph calls.
func (m *MockDictionary) Calls() (translate, morph int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.TranslateN, m.MorphN
}

// Reset zeroes the call counters.
func (m *MockDictionary) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TranslateN = 0
	m.MorphN = 0
}

var _ Dictionary = (*MockDictionary)(nil)
