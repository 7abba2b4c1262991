package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaguanLabs/sarf"
	"github.com/ZaguanLabs/sarf/builder"
	"github.com/ZaguanLabs/sarf/cache"
	"github.com/ZaguanLabs/sarf/glossary"
	"github.com/ZaguanLabs/sarf/tables"
	"github.com/ZaguanLabs/sarf/tooltip"
	"github.com/ZaguanLabs/sarf/web"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	logger := discardLogger()
	assets := web.Assets()

	store := glossary.New(glossary.FSSource{FS: assets, Path: web.GlossaryPath}, glossary.WithLogger(logger))
	store.Load(context.Background())
	require.True(t, store.Loaded(), "embedded glossary: %v", store.LastError())

	mem := cache.NewInMemoryCache(0)
	return &App{
		Analyzer:  sarf.NewAnalyzer(nil, sarf.WithCache(mem), sarf.WithLogger(logger)),
		Glossary:  store,
		Messages:  builder.NewMessages("ar"),
		Locale:    "ar",
		Blocks:    tables.DefaultBlocks(),
		Neighbors: tables.NeighborMap,
		Assets:    assets,
		Logger:    logger,
		Cache:     mem,
	}
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestAPI_Analyze(t *testing.T) {
	h := newTestApp(t).Routes()

	rec := do(t, h, http.MethodGet, "/api/analyze?q="+url.QueryEscape("كتب"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	res := decode[AnalyzeResponse](t, rec)
	assert.Equal(t, sarf.KindArabic, res.Kind)
	assert.Equal(t, "wrote", res.Result.Translation)
	assert.Equal(t, sarf.PatternPast, res.Result.Morphology.Pattern)
	assert.Contains(t, res.HTML, `data-en="past-tense verb"`)
	assert.Empty(t, res.MissingTerms)

	again := decode[AnalyzeResponse](t, do(t, h, http.MethodGet, "/api/analyze?q="+url.QueryEscape("كتب"), nil))
	assert.True(t, again.Cached)
}

func TestAPI_AnalyzeEnglishAndEmpty(t *testing.T) {
	h := newTestApp(t).Routes()

	eng := decode[AnalyzeResponse](t, do(t, h, http.MethodGet, "/api/analyze?q=Write", nil))
	assert.Equal(t, sarf.KindEnglish, eng.Kind)
	assert.Equal(t, "كتب", eng.Arabic)

	unknown := decode[AnalyzeResponse](t, do(t, h, http.MethodGet, "/api/analyze?q=run", nil))
	assert.Equal(t, sarf.NoTranslation, unknown.Result.Translation)
	assert.Equal(t, []string{sarf.Placeholder}, unknown.MissingTerms)

	empty := decode[AnalyzeResponse](t, do(t, h, http.MethodGet, "/api/analyze", nil))
	assert.Equal(t, sarf.KindEmpty, empty.Kind)
	assert.Equal(t, sarf.UnknownType, empty.Result.Morphology.Type)
}

func TestAPI_Glossary(t *testing.T) {
	h := newTestApp(t).Routes()

	info := decode[GlossaryInfo](t, do(t, h, http.MethodGet, "/api/glossary", nil))
	assert.True(t, info.Loaded)
	assert.Equal(t, "2024.1", info.Version)
	assert.Positive(t, info.Terms)

	rec := do(t, h, http.MethodGet, "/api/glossary/"+url.PathEscape(tables.TermMarfu), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	term := decode[TermResponse](t, rec)
	assert.Equal(t, "nominative", term.En)
	assert.Contains(t, term.Tooltip, "<strong>"+tables.TermMarfu+"</strong>")

	missing := do(t, h, http.MethodGet, "/api/glossary/"+url.PathEscape(tables.TermDetachedPro), nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "not found", decode[ErrorResponse](t, missing).Error)
}

func TestAPI_GlossaryFailedLoad(t *testing.T) {
	app := newTestApp(t)
	app.Glossary = glossary.New(glossary.FileSource{Path: "/nonexistent/glossary.json"}, glossary.WithLogger(discardLogger()))
	app.Glossary.Load(context.Background())
	h := app.Routes()

	info := decode[GlossaryInfo](t, do(t, h, http.MethodGet, "/api/glossary", nil))
	assert.False(t, info.Loaded)
	assert.Equal(t, glossary.VersionError, info.Version)
	assert.NotEmpty(t, info.Error)

	// Analysis keeps working, terms are just unbound.
	res := decode[AnalyzeResponse](t, do(t, h, http.MethodGet, "/api/analyze?q="+url.QueryEscape("كتب"), nil))
	assert.Equal(t, "wrote", res.Result.Translation)
	assert.Contains(t, res.HTML, "data-missing")
}

func TestAPI_Tooltip(t *testing.T) {
	h := newTestApp(t).Routes()

	req := TooltipRequest{
		Term:     tables.TermMarfu,
		Target:   tooltip.Rect{Left: 400, Top: 300, Width: 100, Height: 20},
		Tip:      tooltip.Size{Width: 200, Height: 50},
		Viewport: tooltip.Viewport{Width: 1000},
	}

	res := decode[TooltipResponse](t, do(t, h, http.MethodPost, "/api/tooltip", req))
	assert.True(t, res.Visible)
	assert.Contains(t, res.HTML, "(nominative)")
	assert.Equal(t, 350.0, res.Position.Left)
	assert.Equal(t, 242.0, res.Position.Top)

	assert.Equal(t, tables.TermMarfu, res.Active)
	assert.Equal(t, "false", res.AriaHidden)
	assert.Equal(t, tooltip.HideDelay.Milliseconds(), res.HideDelay)

	req.Term = tables.TermDetachedPro
	hidden := decode[TooltipResponse](t, do(t, h, http.MethodPost, "/api/tooltip", req))
	assert.False(t, hidden.Visible)
	assert.Empty(t, hidden.HTML)
	assert.Equal(t, "true", hidden.AriaHidden)

	// A term without data leaves the shown tooltip in place.
	req.Active = tables.TermMarfu
	kept := decode[TooltipResponse](t, do(t, h, http.MethodPost, "/api/tooltip", req))
	assert.True(t, kept.Visible)
	assert.Equal(t, tables.TermMarfu, kept.Active)
	assert.Empty(t, kept.HTML)
}

func TestAPI_TooltipToggle(t *testing.T) {
	h := newTestApp(t).Routes()

	req := TooltipRequest{Action: "toggle", Term: tables.TermMajrur}
	shown := decode[TooltipResponse](t, do(t, h, http.MethodPost, "/api/tooltip", req))
	assert.True(t, shown.Visible)
	assert.Equal(t, tables.TermMajrur, shown.Active)
	assert.Contains(t, shown.HTML, "(genitive)")

	// Toggling any term while one is visible hides the tooltip.
	req.Active, req.Term = tables.TermMajrur, tables.TermMarfu
	hidden := decode[TooltipResponse](t, do(t, h, http.MethodPost, "/api/tooltip", req))
	assert.False(t, hidden.Visible)
	assert.Empty(t, hidden.Active)
	assert.Empty(t, hidden.HTML)
	assert.Equal(t, "true", hidden.AriaHidden)

	bad := do(t, h, http.MethodPost, "/api/tooltip", TooltipRequest{Action: "hover", Term: tables.TermMarfu})
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestAPI_TooltipBadBody(t *testing.T) {
	h := newTestApp(t).Routes()
	req := httptest.NewRequest(http.MethodPost, "/api/tooltip", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_Builder(t *testing.T) {
	h := newTestApp(t).Routes()

	st := builder.State{Root: "كتب", Pattern: builder.PatternI, Pronoun: builder.PronounAna, Tense: builder.TenseImperative}
	res := decode[BuilderResponse](t, do(t, h, http.MethodPost, "/api/builder", BuilderRequest{State: st, Action: "validate"}))

	assert.Equal(t, "أنا — (فعل أمر) — كتب — Form I", res.Text)
	assert.False(t, res.Valid)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, builder.IssueImperativeFirstPerson, res.Issues[0].Code)
	assert.Contains(t, res.Verdict, "تحقّق فشل:")

	en := decode[BuilderResponse](t, do(t, h, http.MethodPost, "/api/builder", BuilderRequest{State: st, Locale: "en"}))
	assert.Equal(t, "The imperative is not normally used with a first-person pronoun (أنا/نحن).", en.Issues[0].Message)
	assert.Empty(t, en.Verdict)

	reset := decode[BuilderResponse](t, do(t, h, http.MethodPost, "/api/builder", BuilderRequest{State: st, Action: "reset"}))
	assert.Equal(t, "هو — (فعل ماضٍ) — — — Form I", reset.Text)
	assert.Equal(t, builder.DefaultState(), reset.State)

	bad := do(t, h, http.MethodPost, "/api/builder", BuilderRequest{Action: "explode"})
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestAPI_BuilderOptions(t *testing.T) {
	h := newTestApp(t).Routes()

	opts := decode[BuilderOptions](t, do(t, h, http.MethodGet, "/api/builder/options", nil))
	assert.Len(t, opts.Pronouns, 8)
	assert.Len(t, opts.Tenses, 3)
	assert.Len(t, opts.Patterns, 3)
	assert.Equal(t, builder.DefaultState(), opts.Defaults)
	assert.Equal(t, "هو — (فعل ماضٍ) — — — Form I", opts.Preview.Text)
	assert.Contains(t, opts.Locales, "en")
}

func TestAPI_Tables(t *testing.T) {
	h := newTestApp(t).Routes()

	res := decode[TablesResponse](t, do(t, h, http.MethodGet, "/api/tables", nil))
	assert.Len(t, res.Blocks, 3)
	assert.Contains(t, res.HTML, `class="table-block"`)
	assert.Contains(t, res.HTML, `title="No glossary entry found"`)
	assert.Equal(t, tables.NeighborMap[tables.TermMajrur], res.Neighbors[tables.TermMajrur])
}

func TestAPI_Highlight(t *testing.T) {
	h := newTestApp(t).Routes()

	click := decode[HighlightResponse](t, do(t, h, http.MethodPost, "/api/tables/highlight",
		HighlightRequest{Event: "click", Term: sarf.PatternPast}))
	assert.Equal(t, sarf.PatternPast, click.Active)
	assert.True(t, click.Cells[sarf.PatternPast].Highlight)
	assert.True(t, click.Cells[sarf.PatternPresent].Related)

	other := decode[HighlightResponse](t, do(t, h, http.MethodPost, "/api/tables/highlight",
		HighlightRequest{Event: "click", Term: tables.TermMarfu, Related: []string{}, Active: sarf.PatternPast}))
	assert.False(t, other.Cells[sarf.PatternPast].Highlight)
	assert.True(t, other.Cells[tables.TermMarfu].Highlight)

	hover := decode[HighlightResponse](t, do(t, h, http.MethodPost, "/api/tables/highlight",
		HighlightRequest{Event: "enter", Term: sarf.PatternPresent}))
	assert.True(t, hover.Cells[sarf.PatternPast].Related)
	assert.False(t, hover.Cells[sarf.PatternPresent].Related)

	bad := do(t, h, http.MethodPost, "/api/tables/highlight", HighlightRequest{Event: "drag"})
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestAPI_Examples(t *testing.T) {
	app := newTestApp(t)
	h := app.Routes()

	before := decode[ExamplesResponse](t, do(t, h, http.MethodGet, "/api/examples", nil))
	assert.False(t, before.Ready)
	assert.Empty(t, before.Arabic)
	assert.Empty(t, before.HTML)

	app.LoadExamples(context.Background(), glossary.FSSource{FS: app.Assets, Path: web.ExamplesPath}, true)

	after := decode[ExamplesResponse](t, do(t, h, http.MethodGet, "/api/examples", nil))
	assert.True(t, after.Ready)
	assert.Contains(t, after.Arabic, "كتب")
	assert.Contains(t, after.EnglishVerbs, "write")
	assert.Contains(t, after.HTML, `class="chip"`)

	// Warm-up analysed every example.
	mem := app.Cache.(*cache.InMemoryCache)
	assert.Equal(t, len(after.Arabic)+len(after.EnglishVerbs), mem.Len())
}

func TestAPI_ExamplesFailedLoad(t *testing.T) {
	app := newTestApp(t)
	app.LoadExamples(context.Background(), glossary.FileSource{Path: "/nonexistent/examples.json"}, true)

	res := decode[ExamplesResponse](t, do(t, app.Routes(), http.MethodGet, "/api/examples", nil))
	assert.True(t, res.Ready)
	assert.Empty(t, res.Arabic)
	assert.Empty(t, res.EnglishVerbs)
}

func TestAPI_UnknownRoute(t *testing.T) {
	h := newTestApp(t).Routes()

	rec := do(t, h, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	static := do(t, h, http.MethodGet, "/nope.html", nil)
	assert.Equal(t, http.StatusNotFound, static.Code)
	assert.Equal(t, NotFoundBody, static.Body.String())
}

func TestAPI_EmbeddedIndex(t *testing.T) {
	h := newTestApp(t).Routes()

	rec := do(t, h, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `id="tooltip"`)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	h := app.Routes()

	rec := do(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, sarf.FullVersion(), res.Version)
	assert.Equal(t, "2024.1", res.Components["glossary"].Detail)
	assert.Equal(t, "loading", res.Components["examples"].Status)
	assert.Equal(t, "entries=0 hits=0 misses=0", res.Components["cache"].Detail)

	app.Cache = nil
	app.LoadExamples(context.Background(), glossary.FSSource{FS: app.Assets, Path: web.ExamplesPath}, false)
	res = decode[HealthResponse](t, do(t, h, http.MethodGet, "/health", nil))
	assert.Equal(t, "disabled", res.Components["cache"].Status)
	assert.Equal(t, "ok", res.Components["examples"].Status)
}

func TestHealth_Degraded(t *testing.T) {
	app := newTestApp(t)
	app.Glossary = glossary.New(glossary.FileSource{Path: "/nonexistent/glossary.json"}, glossary.WithLogger(discardLogger()))
	app.Glossary.Load(context.Background())

	rec := do(t, app.Routes(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	res := decode[HealthResponse](t, rec)
	assert.Equal(t, "degraded", res.Status)
	assert.Equal(t, "degraded", res.Components["glossary"].Status)
}

func TestHealth_CacheDown(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectPing().SetErr(errors.New("connection refused"))

	app := newTestApp(t)
	app.Cache = cache.NewRedisCacheFromClient(client, 0, "")

	rec := do(t, app.Routes(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	res := decode[HealthResponse](t, rec)
	assert.Equal(t, "down", res.Status)
	assert.Equal(t, "down", res.Components["cache"].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealth_CacheUp(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectPing().SetVal("PONG")

	app := newTestApp(t)
	app.Cache = cache.NewRedisCacheFromClient(client, 0, "")

	rec := do(t, app.Routes(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	res := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", res.Components["cache"].Status)
	assert.NotEmpty(t, res.Components["cache"].Latency)
}

func newBufferLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
