// Package sarf provides the lexical core of an Arabic grammar explorer.
//
// Sarf classifies typed input as English or Arabic, translates a small set of
// English verbs through a fixed dictionary, and produces a morphological
// analysis (pattern, root, grammatical type) of an Arabic token. Unknown
// tokens fall back to an approximate prefix heuristic; the result is always
// well formed.
//
// Basic usage:
//
//	import (
//	    "fmt"
//	    "github.com/ZaguanLabs/sarf"
//	    "github.com/ZaguanLabs/sarf/cache"
//	)
//
//	func main() {
//	    a := sarf.NewAnalyzer(sarf.StaticDictionary(),
//	        sarf.WithCache(cache.NewInMemoryCache(3600)),
//	    )
//
//	    res := a.Analyze("write")
//	    fmt.Println(res.Result.Morphology.Root) // ك-ت-ب
//	}
package sarf
