package tables

import "slices"

// CellState is the visual state of one rendered cell.
type CellState struct {
	Highlight bool `json:"highlight"`
	Related   bool `json:"related"`
}

// Highlighter tracks the highlight and related marks of a rendered grid.
// Click sets one exclusive highlighted term; hover is transient.
type Highlighter struct {
	terms     []string // render order, may repeat
	neighbors map[string][]string
	state     map[string]CellState
	active    string
}

// NewHighlighter creates a highlighter over the cells of blocks, using
// neighbors for hover links. A nil neighbors uses NeighborMap.
func NewHighlighter(blocks []Block, neighbors map[string][]string) *Highlighter {
	if neighbors == nil {
		neighbors = NeighborMap
	}
	h := &Highlighter{
		terms:     Terms(blocks),
		neighbors: neighbors,
		state:     make(map[string]CellState),
	}
	for _, t := range h.terms {
		h.state[t] = CellState{}
	}
	return h
}

// Click clears every mark, highlights the cells carrying term, and marks
// the cells whose term is in related.
func (h *Highlighter) Click(term string, related []string) {
	for t := range h.state {
		h.state[t] = CellState{}
	}
	h.active = ""

	if _, ok := h.state[term]; ok {
		h.state[term] = CellState{Highlight: true}
		h.active = term
	}
	for _, r := range related {
		if st, ok := h.state[r]; ok {
			st.Related = true
			h.state[r] = st
		}
	}
}

// HoverEnter marks the neighbors of term as related.
func (h *Highlighter) HoverEnter(term string) {
	h.setRelated(term, true)
}

// HoverLeave clears the related mark on the neighbors of term.
func (h *Highlighter) HoverLeave(term string) {
	h.setRelated(term, false)
}

func (h *Highlighter) setRelated(term string, on bool) {
	if term == "" {
		return
	}
	neighbors := h.neighbors[term]
	for t, st := range h.state {
		if t != term && slices.Contains(neighbors, t) {
			st.Related = on
			h.state[t] = st
		}
	}
}

// CellState returns the state of the cell carrying term.
func (h *Highlighter) CellState(term string) CellState {
	return h.state[term]
}

// Active returns the term set by the last Click, or "".
func (h *Highlighter) Active() string {
	return h.active
}

// Snapshot returns the state of every cell.
func (h *Highlighter) Snapshot() map[string]CellState {
	out := make(map[string]CellState, len(h.state))
	for t, st := range h.state {
		out[t] = st
	}
	return out
}
