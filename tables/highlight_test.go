package tables

import (
	"testing"

	"github.com/ZaguanLabs/sarf"
)

func TestDefaultBlocks(t *testing.T) {
	blocks := DefaultBlocks()
	if len(blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(blocks))
	}

	counts := []int{3, 3, 2}
	for i, b := range blocks {
		if len(b.Cells) != counts[i] {
			t.Errorf("block %q has %d cells, want %d", b.Title, len(b.Cells), counts[i])
		}
		for _, c := range b.Cells {
			if c.Related == nil {
				t.Errorf("cell %q has nil Related", c.Term)
			}
		}
	}

	if got := Terms(blocks); len(got) != 8 || got[0] != sarf.PatternPast {
		t.Errorf("Terms = %v", got)
	}
}

func TestHighlighter_ClickIsExclusive(t *testing.T) {
	h := NewHighlighter(DefaultBlocks(), nil)

	h.Click(TermMajrur, []string{TermHarfJarr, TermIdafa})
	h.Click(TermMarfu, []string{TermMubtada, TermKhabar})

	if !h.CellState(TermMarfu).Highlight {
		t.Error("clicked cell should be highlighted")
	}
	if h.CellState(TermMajrur).Highlight {
		t.Error("previous highlight should be cleared")
	}
	if h.Active() != TermMarfu {
		t.Errorf("Active = %q", h.Active())
	}

	highlighted := 0
	for _, st := range h.Snapshot() {
		if st.Highlight {
			highlighted++
		}
	}
	if highlighted != 1 {
		t.Errorf("highlighted cells = %d, want 1", highlighted)
	}
}

func TestHighlighter_ClickMarksRelatedCells(t *testing.T) {
	h := NewHighlighter(DefaultBlocks(), nil)

	h.Click(sarf.PatternPast, []string{sarf.PatternPresent, sarf.PatternImperative})

	if !h.CellState(sarf.PatternPresent).Related || !h.CellState(sarf.PatternImperative).Related {
		t.Error("related cells should be marked")
	}
	if h.CellState(TermMarfu).Related {
		t.Error("unrelated cells must stay clear")
	}
}

func TestHighlighter_ClickUnknownTerm(t *testing.T) {
	h := NewHighlighter(DefaultBlocks(), nil)
	h.Click(TermMarfu, nil)
	h.Click("غير موجود", nil)

	if h.Active() != "" {
		t.Errorf("Active = %q, want empty", h.Active())
	}
	for term, st := range h.Snapshot() {
		if st.Highlight || st.Related {
			t.Errorf("cell %q still marked: %+v", term, st)
		}
	}
}

func TestHighlighter_Hover(t *testing.T) {
	h := NewHighlighter(DefaultBlocks(), nil)

	// The neighbors of مجرور are not cells in the default blocks.
	h.HoverEnter(TermMajrur)
	for term, st := range h.Snapshot() {
		if st.Related {
			t.Errorf("cell %q marked by a hover with no visible neighbors", term)
		}
	}

	h.HoverEnter(sarf.PatternPast)
	if !h.CellState(sarf.PatternPresent).Related || !h.CellState(sarf.PatternImperative).Related {
		t.Error("tense neighbors should be marked on hover")
	}

	h.HoverLeave(sarf.PatternPast)
	if h.CellState(sarf.PatternPresent).Related || h.CellState(sarf.PatternImperative).Related {
		t.Error("hover leave should clear neighbor marks")
	}
}

func TestHighlighter_HoverDoesNotTouchHighlight(t *testing.T) {
	h := NewHighlighter(DefaultBlocks(), nil)
	h.Click(sarf.PatternPresent, nil)

	h.HoverEnter(sarf.PatternPast)
	h.HoverLeave(sarf.PatternPast)

	if !h.CellState(sarf.PatternPresent).Highlight {
		t.Error("hover must not clear the clicked highlight")
	}
}

func TestHighlighter_CustomNeighbors(t *testing.T) {
	blocks := []Block{{Title: "t", Cells: []Cell{cell("a", "a"), cell("b", "b")}}}
	h := NewHighlighter(blocks, map[string][]string{"a": {"b"}})

	h.HoverEnter("a")
	if !h.CellState("b").Related {
		t.Error("custom neighbor should be marked")
	}
	h.HoverEnter("")
	if len(h.Snapshot()) != 2 {
		t.Errorf("snapshot = %v", h.Snapshot())
	}
}
