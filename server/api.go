package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ZaguanLabs/sarf"
	"github.com/ZaguanLabs/sarf/builder"
	"github.com/ZaguanLabs/sarf/glossary"
	"github.com/ZaguanLabs/sarf/render"
	"github.com/ZaguanLabs/sarf/tables"
	"github.com/ZaguanLabs/sarf/tooltip"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// AnalyzeResponse is the body of GET /api/analyze.
type AnalyzeResponse struct {
	sarf.Analysis
	HTML         string   `json:"html"`
	MissingTerms []string `json:"missingTerms"`
}

func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	res := a.Analyzer.Analyze(r.URL.Query().Get("q"))

	fragment, err := render.Result(res)
	if err == nil {
		fragment, err = render.BindTerms(fragment, a.Glossary)
	}
	if err != nil {
		a.renderFailed(w, r, err)
		return
	}

	missing, err := render.MissingTerms(fragment, a.Glossary)
	if err != nil {
		a.renderFailed(w, r, err)
		return
	}
	if missing == nil {
		missing = []string{}
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{Analysis: res, HTML: fragment, MissingTerms: missing})
}

// GlossaryInfo is the body of GET /api/glossary.
type GlossaryInfo struct {
	Version string `json:"version"`
	Loaded  bool   `json:"loaded"`
	Terms   int    `json:"terms"`
	Error   string `json:"error,omitempty"`
}

func (a *App) handleGlossary(w http.ResponseWriter, r *http.Request) {
	st := a.Glossary.State()
	info := GlossaryInfo{Version: st.Version, Loaded: st.Loaded, Terms: len(st.Terms)}
	if err := a.Glossary.LastError(); err != nil {
		info.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, info)
}

// TermResponse is the body of GET /api/glossary/{term}.
type TermResponse struct {
	Term string `json:"term"`
	glossary.Entry
	Tooltip string `json:"tooltip"`
}

func (a *App) handleTerm(w http.ResponseWriter, r *http.Request) {
	term := r.PathValue("term")
	entry, ok := a.Glossary.Lookup(term)
	if !ok {
		writeError(w, http.StatusNotFound, sarf.ErrNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, TermResponse{Term: term, Entry: entry, Tooltip: tooltip.Content(term, entry)})
}

// TooltipRequest is one show or toggle on a term. Active is the term the
// client currently shows, if any; the overlay is seeded with it so that a
// toggle on a visible tooltip hides it whatever it shows.
type TooltipRequest struct {
	Action   string           `json:"action"` // "" or "show", "toggle"
	Term     string           `json:"term"`
	Active   string           `json:"active"`
	Target   tooltip.Rect     `json:"target"`
	Tip      tooltip.Size     `json:"tip"`
	Viewport tooltip.Viewport `json:"viewport"`
}

// TooltipResponse is the overlay state after the action. HTML and Position
// are set only when the term was shown; a term without glossary data leaves
// the overlay as it was. HideDelay is the pointer-leave delay in ms.
type TooltipResponse struct {
	Visible    bool          `json:"visible"`
	Active     string        `json:"active"`
	AriaHidden string        `json:"ariaHidden"`
	HTML       string        `json:"html,omitempty"`
	Position   tooltip.Point `json:"position"`
	HideDelay  int64         `json:"hideDelay"`
}

func (a *App) handleTooltip(w http.ResponseWriter, r *http.Request) {
	var req TooltipRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ov := tooltip.NewOverlay(a.Glossary)
	if req.Active != "" {
		ov.Show(req.Active)
	}

	var shown bool
	switch req.Action {
	case "", "show":
		shown = ov.Show(req.Term)
	case "toggle":
		shown = ov.Toggle(req.Term)
	default:
		writeError(w, http.StatusBadRequest, "unknown action: "+req.Action)
		return
	}

	resp := TooltipResponse{
		Visible:    ov.Visible(),
		Active:     ov.Active(),
		AriaHidden: ov.AriaHidden(),
		HideDelay:  tooltip.HideDelay.Milliseconds(),
	}
	if shown {
		resp.HTML = ov.Content()
		resp.Position = tooltip.Position(req.Target, req.Tip, req.Viewport)
	}
	writeJSON(w, http.StatusOK, resp)
}

// BuilderRequest carries the builder state and the action to apply.
// Action is "" (preview), "validate" or "reset".
type BuilderRequest struct {
	State  builder.State `json:"state"`
	Action string        `json:"action"`
	Locale string        `json:"locale"`
}

// BuilderResponse is the body of POST /api/builder.
type BuilderResponse struct {
	State builder.State `json:"state"`
	builder.Preview
	Verdict string `json:"verdict,omitempty"`
}

func (a *App) handleBuilder(w http.ResponseWriter, r *http.Request) {
	var req BuilderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = a.Locale
	}
	b := builder.FromState(req.State, a.Messages, locale)

	resp := BuilderResponse{}
	switch req.Action {
	case "":
	case "reset":
		b.Reset()
	case "validate":
		resp.Verdict = b.Verdict()
	default:
		writeError(w, http.StatusBadRequest, "unknown action: "+req.Action)
		return
	}

	resp.State = b.State()
	resp.Preview = b.Preview()
	writeJSON(w, http.StatusOK, resp)
}

// BuilderOptions is the body of GET /api/builder/options.
type BuilderOptions struct {
	Patterns []builder.Option `json:"patterns"`
	Tenses   []builder.Option `json:"tenses"`
	Pronouns []builder.Option `json:"pronouns"`
	Defaults builder.State    `json:"defaults"`
	Preview  builder.Preview  `json:"preview"`
	Locales  []string         `json:"locales"`
}

func (a *App) handleBuilderOptions(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = a.Locale
	}
	b := builder.New(a.Messages, locale)
	writeJSON(w, http.StatusOK, BuilderOptions{
		Patterns: builder.Patterns(),
		Tenses:   builder.Tenses(),
		Pronouns: builder.Pronouns(),
		Defaults: b.State(),
		Preview:  b.Preview(),
		Locales:  a.Messages.Languages(),
	})
}

// TablesResponse is the body of GET /api/tables.
type TablesResponse struct {
	HTML      string              `json:"html"`
	Blocks    []tables.Block      `json:"blocks"`
	Neighbors map[string][]string `json:"neighbors"`
}

func (a *App) handleTables(w http.ResponseWriter, r *http.Request) {
	fragment, err := render.Tables(a.Blocks, a.Glossary)
	if err == nil {
		fragment, err = render.BindTerms(fragment, a.Glossary)
	}
	if err != nil {
		a.renderFailed(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TablesResponse{HTML: fragment, Blocks: a.Blocks, Neighbors: a.Neighbors})
}

// HighlightRequest is one pointer event on a table cell. Event is "click",
// "enter" or "leave"; Active is the currently clicked term, if any.
type HighlightRequest struct {
	Event   string   `json:"event"`
	Term    string   `json:"term"`
	Related []string `json:"related"`
	Active  string   `json:"active"`
}

// HighlightResponse is the resulting state of every cell.
type HighlightResponse struct {
	Active string                      `json:"active"`
	Cells  map[string]tables.CellState `json:"cells"`
}

func (a *App) handleHighlight(w http.ResponseWriter, r *http.Request) {
	var req HighlightRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h := tables.NewHighlighter(a.Blocks, a.Neighbors)
	if req.Active != "" {
		h.Click(req.Active, a.relatedOf(req.Active))
	}

	switch req.Event {
	case "click":
		related := req.Related
		if related == nil {
			related = a.relatedOf(req.Term)
		}
		h.Click(req.Term, related)
	case "enter":
		h.HoverEnter(req.Term)
	case "leave":
		h.HoverLeave(req.Term)
	default:
		writeError(w, http.StatusBadRequest, "unknown event: "+req.Event)
		return
	}

	writeJSON(w, http.StatusOK, HighlightResponse{Active: h.Active(), Cells: h.Snapshot()})
}

func (a *App) relatedOf(term string) []string {
	for _, b := range a.Blocks {
		for _, c := range b.Cells {
			if c.Term == term {
				return c.Related
			}
		}
	}
	return nil
}

// ExamplesResponse is the body of GET /api/examples.
type ExamplesResponse struct {
	glossary.Examples
	HTML  string `json:"html"`
	Ready bool   `json:"ready"`
}

func (a *App) handleExamples(w http.ResponseWriter, r *http.Request) {
	ex, ready := a.Examples()
	fragment, err := render.Examples(ex)
	if err != nil {
		a.renderFailed(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ExamplesResponse{Examples: ex, HTML: fragment, Ready: ready})
}

func (a *App) renderFailed(w http.ResponseWriter, r *http.Request, err error) {
	a.Logger.ErrorContext(r.Context(), "render failed",
		slog.String("path", r.URL.Path),
		slog.String("request_id", RequestIDFromContext(r.Context())),
		slog.Any("error", err),
	)
	writeError(w, http.StatusInternalServerError, "render failed")
}

func isAPIPath(p string) bool {
	return strings.HasPrefix(p, "/api/")
}
