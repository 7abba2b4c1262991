package provider

import (
	"context"
	"strings"

	"github.com/ZaguanLabs/sarf"
	"github.com/ZaguanLabs/sarf/glossary"
)

// Lexicon is a dictionary loaded from a JSON resource:
//
//	{
//	  "verbs":      {"go": "ذهب"},
//	  "morphology": {"ذهب": {"pattern": "فعل ماضٍ", "root": "ذ-ه-ب", "type": "verb", "paraphrase": "went"}}
//	}
//
// Verb keys are lowercased on load. A Lexicon is read-only after loading.
type Lexicon struct {
	Verbs      map[string]string     `json:"verbs"`
	Morphology map[string]MorphEntry `json:"morphology"`
}

// LoadLexicon reads a Lexicon from src.
func LoadLexicon(ctx context.Context, src glossary.Source) (*Lexicon, error) {
	var lx Lexicon
	if err := glossary.Decode(ctx, src, &lx); err != nil {
		return nil, err
	}

	verbs := make(map[string]string, len(lx.Verbs))
	for en, ar := range lx.Verbs {
		verbs[strings.ToLower(strings.TrimSpace(en))] = ar
	}
	lx.Verbs = verbs
	if lx.Morphology == nil {
		lx.Morphology = map[string]MorphEntry{}
	}
	return &lx, nil
}

// Translate implements Dictionary.
func (l *Lexicon) Translate(word string) (string, bool) {
	ar, ok := l.Verbs[word]
	return ar, ok
}

// Morph implements Dictionary.
func (l *Lexicon) Morph(token string) (MorphEntry, bool) {
	e, ok := l.Morphology[token]
	return e, ok
}

// Layered consults each dictionary in order and returns the first hit.
type Layered []Dictionary

// WithStatic layers extra dictionaries over the built-in tables, so the
// built-in entries answer only what the extras do not.
func WithStatic(extra ...Dictionary) Layered {
	return append(Layered(extra), sarf.StaticDictionary())
}

// Translate implements Dictionary.
func (l Layered) Translate(word string) (string, bool) {
	for _, d := range l {
		if ar, ok := d.Translate(word); ok {
			return ar, true
		}
	}
	return "", false
}

// Morph implements Dictionary.
func (l Layered) Morph(token string) (MorphEntry, bool) {
	for _, d := range l {
		if e, ok := d.Morph(token); ok {
			return e, true
		}
	}
	return MorphEntry{}, false
}

var (
	_ Dictionary = (*Lexicon)(nil)
	_ Dictionary = Layered(nil)
)
