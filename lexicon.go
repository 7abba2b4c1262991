package sarf

import (
	"strings"
	"unicode/utf8"
)

// Dictionary is the interface for lexical backends.
type Dictionary interface {
	// Translate returns the Arabic form of a normalized English verb.
	Translate(word string) (string, bool)

	// Morph returns the morphology table row for an exact surface form.
	Morph(token string) (MorphEntry, bool)
}

// englishToArabic is the fixed verb dictionary, keyed by lowercase English.
var englishToArabic = map[string]string{
	"write": "كتب",
	"read":  "قرأ",
	"say":   "قال",
	"give":  "أعطى",
	"come":  "جاء",
}

// arabicMorphology is the fixed morphology table.
var arabicMorphology = map[string]MorphEntry{
	"كتب":  {Pattern: PatternPast, Root: "ك-ت-ب", Type: "verb", Paraphrase: "wrote"},
	"يكتب": {Pattern: PatternPresent, Root: "ك-ت-ب", Type: "verb", Paraphrase: "writes/is writing"},
	"اكتب": {Pattern: PatternImperative, Root: "ك-ت-ب", Type: "verb", Paraphrase: "write!"},
	"قرأ":  {Pattern: PatternPast, Root: "ق-ر-أ", Type: "verb", Paraphrase: "read (past)"},
	"قال":  {Pattern: PatternPast, Root: "ق-و-ل", Type: "verb", Paraphrase: "said"},
	"الذي": {Pattern: "اسم موصول", Root: "-", Type: "particle", Paraphrase: "which/who (masc. sing.)"},
}

// presentPrefixes are the imperfect prefixes checked by the fallback heuristic.
var presentPrefixes = []rune{'ي', 'ت', 'ن'}

type staticDictionary struct{}

// StaticDictionary returns the built-in fixed dictionary.
func StaticDictionary() Dictionary {
	return staticDictionary{}
}

func (staticDictionary) Translate(word string) (string, bool) {
	ar, ok := englishToArabic[word]
	return ar, ok
}

func (staticDictionary) Morph(token string) (MorphEntry, bool) {
	entry, ok := arabicMorphology[token]
	return entry, ok
}

// TranslateEnglishVerb translates a known English verb to Arabic.
// The match is exact after trimming and lowercasing; it returns "" on a miss.
func TranslateEnglishVerb(word string) string {
	return translateWith(StaticDictionary(), word)
}

// AnalyzeArabicToken analyses an Arabic token against the built-in table.
func AnalyzeArabicToken(token string) AnalysisResult {
	return analyzeWith(StaticDictionary(), token)
}

func translateWith(dict Dictionary, word string) string {
	key := strings.ToLower(strings.TrimSpace(word))
	if key == "" || dict == nil {
		return ""
	}
	ar, ok := dict.Translate(key)
	if !ok {
		return ""
	}
	return ar
}

// analyzeWith looks the token up in dict and falls back to GuessPattern.
func analyzeWith(dict Dictionary, token string) AnalysisResult {
	token = strings.TrimSpace(token)
	if token == "" {
		return placeholderResult()
	}

	if dict != nil {
		if entry, ok := dict.Morph(token); ok {
			return AnalysisResult{
				Input:       token,
				Translation: entry.Paraphrase,
				Morphology: Morphology{
					Pattern: entry.Pattern,
					Root:    entry.Root,
					Type:    entry.Type,
				},
				GrammarType: entry.Pattern,
			}
		}
	}

	pattern := GuessPattern(token)
	return AnalysisResult{
		Input:       token,
		Translation: Placeholder,
		Morphology: Morphology{
			Pattern: pattern,
			Root:    Placeholder,
			Type:    UnknownType,
		},
		GrammarType: pattern,
	}
}

// GuessPattern labels an unknown token as present tense when it begins with
// one of the imperfect prefixes ي, ت or ن, and as past tense otherwise.
// This is an approximation, not a linguistic rule.
func GuessPattern(token string) string {
	first, _ := utf8.DecodeRuneInString(token)
	for _, p := range presentPrefixes {
		if first == p {
			return PatternPresent
		}
	}
	return PatternPast
}
