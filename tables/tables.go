// Package tables defines the static grammar tables and the cross-link
// highlighting between related cells.
package tables

import "github.com/ZaguanLabs/sarf"

// Cell is one labeled table cell linked to a glossary term.
type Cell struct {
	Label   string   `json:"label"`
	Term    string   `json:"term"`
	Related []string `json:"related"`
}

// Block is a titled group of cells.
type Block struct {
	Title string `json:"title"`
	Cells []Cell `json:"cells"`
}

// Case marker and pronoun terms.
const (
	TermMarfu       = "مرفوع"
	TermMansub      = "منصوب"
	TermMajrur      = "مجرور"
	TermMubtada     = "المبتدأ"
	TermKhabar      = "الخبر"
	TermHarfJarr    = "حرف جر"
	TermIdafa       = "إضافة"
	TermAttachedPro = "ضمير متصل"
	TermDetachedPro = "ضمير منفصل"
)

// NeighborMap lists the directly related terms used for hover highlighting.
// The links are curated by hand.
var NeighborMap = map[string][]string{
	sarf.PatternPast:       {sarf.PatternPresent, sarf.PatternImperative},
	sarf.PatternPresent:    {sarf.PatternPast, sarf.PatternImperative},
	sarf.PatternImperative: {sarf.PatternPast, sarf.PatternPresent},
	TermMajrur:             {TermHarfJarr, TermIdafa},
	TermMarfu:              {TermMubtada, TermKhabar},
}

func cell(label, term string, related ...string) Cell {
	if related == nil {
		related = []string{}
	}
	return Cell{Label: label, Term: term, Related: related}
}

// DefaultBlocks returns the three fixed blocks: verb tenses, case markers
// and pronoun types.
func DefaultBlocks() []Block {
	return []Block{
		{
			Title: "الأزمنة الفعلية",
			Cells: []Cell{
				cell(sarf.PatternPast, sarf.PatternPast, sarf.PatternPresent, sarf.PatternImperative),
				cell(sarf.PatternPresent, sarf.PatternPresent, sarf.PatternPast, sarf.PatternImperative),
				cell(sarf.PatternImperative, sarf.PatternImperative, sarf.PatternPast, sarf.PatternPresent),
			},
		},
		{
			Title: "علامات الإعراب",
			Cells: []Cell{
				cell(TermMarfu, TermMarfu, TermKhabar, TermMubtada),
				cell(TermMansub, TermMansub),
				cell(TermMajrur, TermMajrur, TermHarfJarr, TermIdafa),
			},
		},
		{
			Title: "الضمائر",
			Cells: []Cell{
				cell(TermAttachedPro, TermAttachedPro),
				cell(TermDetachedPro, TermDetachedPro),
			},
		},
	}
}

// Terms returns every cell term across blocks, in render order.
func Terms(blocks []Block) []string {
	var out []string
	for _, b := range blocks {
		for _, c := range b.Cells {
			out = append(out, c.Term)
		}
	}
	return out
}
