package sarf_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ZaguanLabs/sarf"
	"github.com/ZaguanLabs/sarf/cache"
	"github.com/ZaguanLabs/sarf/provider"
)

func TestAnalyzer_Empty(t *testing.T) {
	a := sarf.NewAnalyzer(nil)

	for _, in := range []string{"", "   ", "\n"} {
		res := a.Analyze(in)
		if res.Kind != sarf.KindEmpty {
			t.Errorf("Kind = %q, want empty", res.Kind)
		}
		if res.Result.Morphology.Pattern != sarf.Placeholder {
			t.Errorf("Pattern = %q, want placeholder", res.Result.Morphology.Pattern)
		}
		if res.Result.Morphology.Type != sarf.UnknownType {
			t.Errorf("Type = %q, want %q", res.Result.Morphology.Type, sarf.UnknownType)
		}
	}
}

func TestAnalyzer_EnglishKnown(t *testing.T) {
	a := sarf.NewAnalyzer(nil)

	res := a.Analyze("  Write ")
	if res.Kind != sarf.KindEnglish {
		t.Fatalf("Kind = %q, want english", res.Kind)
	}
	if res.Arabic != "كتب" {
		t.Errorf("Arabic = %q, want كتب", res.Arabic)
	}
	if res.Result.Translation != "wrote" {
		t.Errorf("Translation = %q, want wrote", res.Result.Translation)
	}
	if res.Result.Morphology.Root != "ك-ت-ب" {
		t.Errorf("Root = %q", res.Result.Morphology.Root)
	}
}

func TestAnalyzer_EnglishUnknown(t *testing.T) {
	a := sarf.NewAnalyzer(nil)

	res := a.Analyze("run")
	if res.Kind != sarf.KindEnglish {
		t.Fatalf("Kind = %q, want english", res.Kind)
	}
	if res.Arabic != "" {
		t.Errorf("Arabic = %q, want empty", res.Arabic)
	}
	if res.Result.Translation != sarf.NoTranslation {
		t.Errorf("Translation = %q, want %q", res.Result.Translation, sarf.NoTranslation)
	}
	m := res.Result.Morphology
	if m.Pattern != sarf.Placeholder || m.Root != sarf.Placeholder || m.Type != sarf.Placeholder {
		t.Errorf("Morphology = %+v, want placeholders", m)
	}
}

func TestAnalyzer_ArabicFallback(t *testing.T) {
	a := sarf.NewAnalyzer(nil)

	res := a.Analyze("يذهب")
	if res.Kind != sarf.KindArabic {
		t.Fatalf("Kind = %q, want arabic", res.Kind)
	}
	if res.Result.Morphology.Pattern != sarf.PatternPresent {
		t.Errorf("Pattern = %q, want %q", res.Result.Morphology.Pattern, sarf.PatternPresent)
	}
}

func TestAnalyzer_CachesResults(t *testing.T) {
	dict := provider.NewMockDictionary()
	c := cache.NewInMemoryCache(3600)
	a := sarf.NewAnalyzer(dict, sarf.WithCache(c))

	first := a.Analyze("go")
	if first.Cached {
		t.Error("first call should not be cached")
	}
	if first.Arabic != "ذهب" || first.Result.Translation != "went" {
		t.Errorf("unexpected result %+v", first)
	}

	second := a.Analyze("go")
	if !second.Cached {
		t.Error("second call should be cached")
	}
	if second.Result != first.Result {
		t.Errorf("cached result differs: %+v vs %+v", second.Result, first.Result)
	}

	translate, morph := dict.Calls()
	if translate != 1 || morph != 1 {
		t.Errorf("dictionary calls = (%d, %d), want (1, 1)", translate, morph)
	}
	if c.Len() != 1 {
		t.Errorf("cache entries = %d, want 1", c.Len())
	}
}

func TestAnalyzer_CacheKeySeparatesKinds(t *testing.T) {
	c := cache.NewInMemoryCache(0)
	a := sarf.NewAnalyzer(nil, sarf.WithCache(c))

	a.Analyze("write")
	a.Analyze("كتب")

	if c.Len() != 2 {
		t.Errorf("cache entries = %d, want 2", c.Len())
	}
}

func TestAnalyzer_MalformedCacheEntry(t *testing.T) {
	c := cache.NewInMemoryCache(0)
	a := sarf.NewAnalyzer(nil, sarf.WithCache(c))

	key := sarf.CacheKey(sarf.HashText("كتب"), sarf.KindArabic)
	c.Set(key, "{not json")

	res := a.Analyze("كتب")
	if res.Cached {
		t.Error("malformed entry must not be served")
	}
	if res.Result.Translation != "wrote" {
		t.Errorf("Translation = %q, want wrote", res.Result.Translation)
	}
}

type failingCache struct{ sets int }

func (f *failingCache) Get(string) (string, bool) { return "", false }
func (f *failingCache) Set(string, string) error {
	f.sets++
	return &sarf.CacheError{Message: "down"}
}

func TestAnalyzer_CacheFailureIsNotFatal(t *testing.T) {
	fc := &failingCache{}
	a := sarf.NewAnalyzer(nil, sarf.WithCache(fc))

	res := a.Analyze("قال")
	if res.Result.Translation != "said" {
		t.Errorf("Translation = %q, want said", res.Result.Translation)
	}
	if fc.sets != 1 {
		t.Errorf("sets = %d, want 1", fc.sets)
	}
}

func TestAnalyzer_Normalization(t *testing.T) {
	decomposed := "\u0642\u0631\u0627\u0654"

	res := sarf.NewAnalyzer(nil).Analyze(decomposed)
	if res.Result.Translation != "read (past)" {
		t.Errorf("normalized Translation = %q, want %q", res.Result.Translation, "read (past)")
	}

	raw := sarf.NewAnalyzer(nil, sarf.WithNormalization(false)).Analyze(decomposed)
	if raw.Result.Morphology.Type != sarf.UnknownType {
		t.Errorf("without normalization Type = %q, want %q", raw.Result.Morphology.Type, sarf.UnknownType)
	}
}

func TestAnalyzer_LayeredLexicon(t *testing.T) {
	mock := provider.NewMockDictionary()
	a := sarf.NewAnalyzer(provider.WithStatic(mock))

	if got := a.Translate("go"); got != "ذهب" {
		t.Errorf("Translate(go) = %q, want ذهب", got)
	}
	if got := a.Translate("write"); got != "كتب" {
		t.Errorf("Translate(write) = %q, want built-in كتب", got)
	}
	if got := a.AnalyzeToken("ذهب"); got.Morphology.Root != "ذ-ه-ب" {
		t.Errorf("Root = %q, want ذ-ه-ب", got.Morphology.Root)
	}
}

func TestAnalyzeBatch(t *testing.T) {
	c := cache.NewInMemoryCache(0)
	a := sarf.NewAnalyzer(nil, sarf.WithCache(c))

	inputs := []string{"كتب", "write", "يذهب", "كتب", "run"}
	results, err := a.AnalyzeBatch(context.Background(), inputs, 2)
	if err != nil {
		t.Fatalf("AnalyzeBatch: %v", err)
	}
	if len(results) != len(inputs) {
		t.Fatalf("len = %d, want %d", len(results), len(inputs))
	}

	for i, in := range inputs {
		want := sarf.NewAnalyzer(nil).Analyze(in)
		if results[i].Result != want.Result {
			t.Errorf("results[%d] (%s) = %+v, want %+v", i, in, results[i].Result, want.Result)
		}
	}

	// Duplicates are analysed once.
	if c.Len() != 4 {
		t.Errorf("cache entries = %d, want 4", c.Len())
	}
}

func TestAnalyzeBatch_Empty(t *testing.T) {
	results, err := sarf.NewAnalyzer(nil).AnalyzeBatch(context.Background(), nil, 0)
	if err != nil {
		t.Fatalf("AnalyzeBatch: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len = %d, want 0", len(results))
	}
}

func TestAnalyzeBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sarf.NewAnalyzer(nil).AnalyzeBatch(ctx, []string{"كتب", "قال"}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
