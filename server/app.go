package server

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/ZaguanLabs/sarf"
	"github.com/ZaguanLabs/sarf/builder"
	"github.com/ZaguanLabs/sarf/glossary"
	"github.com/ZaguanLabs/sarf/tables"
)

// pinger is implemented by caches that can report their health.
type pinger interface {
	Ping(ctx context.Context) error
}

// App holds the initialized components behind the HTTP handlers.
type App struct {
	Analyzer  *sarf.Analyzer
	Glossary  *glossary.Store
	Messages  *builder.Messages
	Locale    string
	Blocks    []tables.Block
	Neighbors map[string][]string
	Assets    fs.FS
	Logger    *slog.Logger

	// Cache is reported by /health when it can be pinged.
	Cache sarf.AnalysisCache

	examples atomic.Pointer[glossary.Examples]
}

// Examples returns the loaded examples and whether loading has finished.
// Until then the list is empty.
func (a *App) Examples() (glossary.Examples, bool) {
	if ex := a.examples.Load(); ex != nil {
		return *ex, true
	}
	return glossary.EmptyExamples(), false
}

// LoadExamples fetches the examples from src and publishes them. A failed
// load publishes the empty list. When warm is set every example is then
// analysed once so the cache holds their results.
func (a *App) LoadExamples(ctx context.Context, src glossary.Source, warm bool) {
	ex, _ := glossary.LoadExamples(ctx, src, a.Logger)
	a.examples.Store(&ex)

	if !warm || a.Analyzer == nil {
		return
	}
	inputs := ex.All()
	if len(inputs) == 0 {
		return
	}
	if _, err := a.Analyzer.AnalyzeBatch(ctx, inputs, sarf.DefaultBatchWorkers); err != nil {
		a.Logger.Warn("cache warm-up interrupted", slog.Any("error", err))
		return
	}
	a.Logger.Info("cache warmed", slog.Int("inputs", len(inputs)))
}

// Routes registers the API and the static asset handler on a new mux.
func (a *App) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/analyze", a.handleAnalyze)
	mux.HandleFunc("GET /api/glossary", a.handleGlossary)
	mux.HandleFunc("GET /api/glossary/{term}", a.handleTerm)
	mux.HandleFunc("POST /api/tooltip", a.handleTooltip)
	mux.HandleFunc("POST /api/builder", a.handleBuilder)
	mux.HandleFunc("GET /api/builder/options", a.handleBuilderOptions)
	mux.HandleFunc("GET /api/tables", a.handleTables)
	mux.HandleFunc("POST /api/tables/highlight", a.handleHighlight)
	mux.HandleFunc("GET /api/examples", a.handleExamples)
	mux.HandleFunc("GET /health", a.handleHealth)

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, sarf.ErrNotFound.Error())
	})
	mux.Handle("/", NewStaticHandler(a.Assets))

	return mux
}

// Handler wraps Routes with the middleware stack. A nil limiter disables
// rate limiting.
func (a *App) Handler(limiter *sarf.RateLimiter, requestsPerMinute int) http.Handler {
	mws := []Middleware{
		RequestID(),
		Logger(a.Logger),
		Recovery(a.Logger),
	}
	if limiter != nil {
		mws = append(mws, RateLimit(limiter, requestsPerMinute))
	}
	return Chain(mws...)(a.Routes())
}
