package glossary

import (
	"context"
	"log/slog"
)

// Examples are the sample inputs offered as chips.
type Examples struct {
	Arabic       []string `json:"arabic"`
	EnglishVerbs []string `json:"englishVerbs"`
}

// EmptyExamples returns the value used when the resource cannot be loaded.
func EmptyExamples() Examples {
	return Examples{Arabic: []string{}, EnglishVerbs: []string{}}
}

// LoadExamples fetches the examples resource. On failure it logs and returns
// EmptyExamples together with the error, which callers may ignore.
func LoadExamples(ctx context.Context, src Source, logger *slog.Logger) (Examples, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var ex Examples
	if err := Decode(ctx, src, &ex); err != nil {
		logger.Error("failed to load examples", slog.Any("error", err))
		return EmptyExamples(), err
	}

	if ex.Arabic == nil {
		ex.Arabic = []string{}
	}
	if ex.EnglishVerbs == nil {
		ex.EnglishVerbs = []string{}
	}
	return ex, nil
}

// All returns every example in display order: Arabic first, then English.
func (e Examples) All() []string {
	out := make([]string, 0, len(e.Arabic)+len(e.EnglishVerbs))
	out = append(out, e.Arabic...)
	out = append(out, e.EnglishVerbs...)
	return out
}
