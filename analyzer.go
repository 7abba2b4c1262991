package sarf

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Analyzer runs the analyse flow: classify, translate English input, then
// analyse the Arabic form.
type Analyzer struct {
	dict      Dictionary
	cache     AnalysisCache
	logger    *slog.Logger
	normalize bool
}

// AnalysisCache is the interface for analysis result caching.
type AnalysisCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// AnalyzerOption is a functional option for configuring the Analyzer.
type AnalyzerOption func(*Analyzer)

// WithCache sets the analysis cache.
func WithCache(cache AnalysisCache) AnalyzerOption {
	return func(a *Analyzer) {
		a.cache = cache
	}
}

// WithLogger sets the logger used for cache failures.
func WithLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithNormalization toggles NFC normalization of input before lookup.
func WithNormalization(on bool) AnalyzerOption {
	return func(a *Analyzer) {
		a.normalize = on
	}
}

// NewAnalyzer creates a new Analyzer backed by dict.
// A nil dict falls back to StaticDictionary.
func NewAnalyzer(dict Dictionary, opts ...AnalyzerOption) *Analyzer {
	if dict == nil {
		dict = StaticDictionary()
	}
	a := &Analyzer{
		dict:      dict,
		logger:    slog.Default(),
		normalize: true,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Analyze runs the full flow for one input. It never fails: every path ends
// in a well-formed result.
func (a *Analyzer) Analyze(input string) Analysis {
	val := strings.TrimSpace(input)
	if a.normalize {
		val = Normalize(val)
	}

	kind := Classify(val)
	if kind == KindEmpty {
		return Analysis{Kind: KindEmpty, Result: placeholderResult()}
	}

	key := CacheKey(HashText(val), kind)
	if cached, ok := a.lookupCache(key); ok {
		cached.Cached = true
		return cached
	}

	res := a.analyze(val, kind)
	a.storeCache(key, res)
	return res
}

func (a *Analyzer) analyze(val string, kind InputKind) Analysis {
	arabic := val
	if kind == KindEnglish {
		arabic = translateWith(a.dict, val)
		if arabic == "" {
			return Analysis{Kind: kind, Result: noTranslationResult(val)}
		}
	}

	return Analysis{
		Kind:   kind,
		Arabic: arabic,
		Result: analyzeWith(a.dict, arabic),
	}
}

// Translate translates an English verb using the analyzer's dictionary.
func (a *Analyzer) Translate(word string) string {
	return translateWith(a.dict, word)
}

// AnalyzeToken analyses an Arabic token using the analyzer's dictionary,
// bypassing classification and the cache.
func (a *Analyzer) AnalyzeToken(token string) AnalysisResult {
	return analyzeWith(a.dict, token)
}

// Dictionary returns the analyzer's dictionary.
func (a *Analyzer) Dictionary() Dictionary {
	return a.dict
}

func (a *Analyzer) lookupCache(key string) (Analysis, bool) {
	if a.cache == nil {
		return Analysis{}, false
	}
	raw, ok := a.cache.Get(key)
	if !ok {
		return Analysis{}, false
	}
	var res Analysis
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		a.logger.Warn("discarding malformed cache entry", slog.String("key", key), slog.Any("error", err))
		return Analysis{}, false
	}
	return res, true
}

func (a *Analyzer) storeCache(key string, res Analysis) {
	if a.cache == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := a.cache.Set(key, string(raw)); err != nil {
		a.logger.Warn("analysis cache set failed", slog.String("key", key), slog.Any("error", err))
	}
}
