// Package render builds the HTML fragments of the explorer UI and binds
// glossary data onto rendered terms.
package render

import (
	"strings"

	"github.com/ZaguanLabs/sarf"
	"github.com/ZaguanLabs/sarf/glossary"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Glossary is the lookup the renderers need.
type Glossary interface {
	Lookup(term string) (glossary.Entry, bool)
}

// TooltipID is the id of the shared tooltip element.
const TooltipID = "tooltip"

// element creates an element node with attributes given as key, value pairs.
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func appendChildren(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

// termSpan renders <span class="term" data-term=... tabindex="0">label</span>.
func termSpan(term, label string) *html.Node {
	span := element(atom.Span, "class", "term", "data-term", term, "tabindex", "0", "dir", sarf.DirectionOf(label))
	span.AppendChild(text(label))
	return span
}

// serialize renders nodes one after another.
func serialize(fragment string, nodes ...*html.Node) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		if err := html.Render(&b, n); err != nil {
			return "", &sarf.RenderError{Message: "failed to serialize HTML", Cause: err, Fragment: fragment}
		}
	}
	return b.String(), nil
}

// Result renders the output section for an analysis: the translation, the
// morphology line with a term for the pattern, and the grammar type term.
func Result(a sarf.Analysis) (string, error) {
	res := a.Result

	translation := res.Translation
	if translation == "" {
		translation = sarf.Placeholder
	}
	tr := element(atom.Div, "id", "translation", "dir", sarf.DirectionOf(translation))
	tr.AppendChild(text(translation))

	morph := res.Morphology
	if morph.Pattern == "" {
		morph = sarf.Morphology{Pattern: sarf.Placeholder, Root: sarf.Placeholder, Type: sarf.Placeholder}
	}
	mo := appendChildren(element(atom.Div, "id", "morphology", "dir", "rtl"),
		termSpan(morph.Pattern, morph.Pattern),
		text(" • الجذر: "+morph.Root+" • النوع: "+morph.Type),
	)

	gt := res.GrammarType
	if gt == "" {
		gt = sarf.Placeholder
	}
	gtDiv := appendChildren(element(atom.Div, "id", "grammar-type"), termSpan(gt, gt))

	return serialize("result", tr, mo, gtDiv)
}

// Examples renders one chip per example, Arabic first. Each chip carries the
// input it fills in as data-value.
func Examples(ex glossary.Examples) (string, error) {
	var chips []*html.Node
	add := func(label, lang string) {
		chip := element(atom.Button, "class", "chip", "type", "button", "data-value", label)
		labelSpan := element(atom.Span, "dir", sarf.DirectionOf(label))
		labelSpan.AppendChild(text(label))
		langSpan := element(atom.Span, "class", "lang")
		langSpan.AppendChild(text("(" + lang + ")"))
		chips = append(chips, appendChildren(chip, labelSpan, langSpan))
	}
	for _, a := range ex.Arabic {
		add(a, "AR")
	}
	for _, e := range ex.EnglishVerbs {
		add(e, "EN")
	}
	return serialize("examples", chips...)
}
