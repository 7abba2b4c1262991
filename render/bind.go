package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/sarf"
	"golang.org/x/net/html"
)

// TermSelector matches every element that carries a glossary term.
const TermSelector = ".term[data-term]"

// BindTerms annotates every term element in fragment with its glossary data
// so the client can show the tooltip without another lookup. Terms with an
// entry get data-en, data-desc and aria-describedby; terms without one get
// data-missing.
func BindTerms(fragment string, g Glossary) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", &sarf.RenderError{Message: "failed to parse HTML", Cause: err, Fragment: "bind"}
	}

	doc.Find(TermSelector).Each(func(_ int, s *goquery.Selection) {
		term, _ := s.Attr("data-term")
		if g == nil {
			s.SetAttr("data-missing", "true")
			return
		}
		entry, ok := g.Lookup(term)
		if !ok {
			s.SetAttr("data-missing", "true")
			return
		}
		s.SetAttr("data-en", entry.En)
		s.SetAttr("data-desc", entry.Desc)
		s.SetAttr("aria-describedby", TooltipID)
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", &sarf.RenderError{Message: "failed to serialize HTML", Cause: err, Fragment: "bind"}
	}
	return out, nil
}

// Terms returns the distinct terms in fragment, in document order.
func Terms(fragment string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, &sarf.RenderError{Message: "failed to parse HTML", Cause: err, Fragment: "terms"}
	}

	var terms []string
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "term") {
			for _, attr := range n.Attr {
				if attr.Key == "data-term" && attr.Val != "" && !seen[attr.Val] {
					seen[attr.Val] = true
					terms = append(terms, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range doc.Nodes {
		walk(n)
	}
	return terms, nil
}

// MissingTerms returns the terms in fragment that have no glossary entry.
func MissingTerms(fragment string, g Glossary) ([]string, error) {
	terms, err := Terms(fragment)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, t := range terms {
		if g == nil {
			missing = append(missing, t)
			continue
		}
		if _, ok := g.Lookup(t); !ok {
			missing = append(missing, t)
		}
	}
	return missing, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, c := range strings.Fields(attr.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}
