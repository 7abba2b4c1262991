package render

import (
	"strings"

	"github.com/ZaguanLabs/sarf/tables"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MissingEntryTitle is the title set on cells whose term has no glossary entry.
const MissingEntryTitle = "No glossary entry found"

// Tables renders the grammar blocks. Each cell is focusable, carries its term
// and its related terms, and is titled when the glossary has no entry for it.
func Tables(blocks []tables.Block, g Glossary) (string, error) {
	var nodes []*html.Node
	for _, b := range blocks {
		wrap := element(atom.Div, "class", "table-block")
		h := element(atom.H3)
		h.AppendChild(text(b.Title))
		wrap.AppendChild(h)

		grid := element(atom.Div, "class", "table-grid")
		for _, c := range b.Cells {
			grid.AppendChild(tableCell(c, g))
		}
		wrap.AppendChild(grid)
		nodes = append(nodes, wrap)
	}
	return serialize("tables", nodes...)
}

func tableCell(c tables.Cell, g Glossary) *html.Node {
	div := element(atom.Div, "class", "cell", "data-term", c.Term, "tabindex", "0")
	if len(c.Related) > 0 {
		div.Attr = append(div.Attr, html.Attribute{Key: "data-related", Val: strings.Join(c.Related, "|")})
	}
	if g == nil {
		div.Attr = append(div.Attr, html.Attribute{Key: "title", Val: MissingEntryTitle})
	} else if _, ok := g.Lookup(c.Term); !ok {
		div.Attr = append(div.Attr, html.Attribute{Key: "title", Val: MissingEntryTitle})
	}
	div.AppendChild(termSpan(c.Term, c.Label))
	return div
}
