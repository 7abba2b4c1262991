package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ZaguanLabs/sarf"
	"github.com/ZaguanLabs/sarf/builder"
	"github.com/ZaguanLabs/sarf/cache"
	"github.com/ZaguanLabs/sarf/config"
	"github.com/ZaguanLabs/sarf/glossary"
	"github.com/ZaguanLabs/sarf/provider"
	"github.com/ZaguanLabs/sarf/render"
	"github.com/ZaguanLabs/sarf/tables"
	"github.com/ZaguanLabs/sarf/web"
)

// Bootstrap initializes the components in dependency order: glossary,
// tooltips, tables, builder, examples, analysis cache. The glossary load
// completes before anything that reads it; examples load in the
// background and never block start-up. The returned cleanup releases the
// cache connection.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	assets, err := Assets(cfg.Server.Root)
	if err != nil {
		return nil, nil, err
	}

	app := &App{
		Assets: assets,
		Logger: logger,
		Locale: cfg.I18n.DefaultLocale,
	}

	// Glossary. Failures leave an empty store; the UI keeps working.
	app.Glossary = glossary.New(
		glossary.ResolveSource(cfg.Resources.Glossary, assets, web.GlossaryPath),
		glossary.WithLogger(logger),
	)
	app.Glossary.Load(ctx)
	if cfg.Resources.Watch {
		watchGlossary(ctx, app.Glossary, cfg.Resources.Glossary, logger)
	}

	// Tooltips are stateless per request and only need the glossary.

	// Tables.
	app.Blocks = tables.DefaultBlocks()
	app.Neighbors = tables.NeighborMap
	if html, err := render.Tables(app.Blocks, app.Glossary); err != nil {
		logger.Warn("tables render check failed", slog.Any("error", err))
	} else if missing, _ := render.MissingTerms(html, app.Glossary); len(missing) > 0 {
		logger.Info("table terms without glossary entries", slog.Any("terms", missing))
	}

	// Builder.
	app.Messages = builder.NewMessages(cfg.I18n.DefaultLocale)

	// Analysis cache and analyzer.
	c, cleanup := openCache(ctx, cfg.Cache, logger)
	opts := []sarf.AnalyzerOption{sarf.WithLogger(logger)}
	if c != nil {
		opts = append(opts, sarf.WithCache(c))
		app.Cache = c
	}
	app.Analyzer = sarf.NewAnalyzer(loadDictionary(ctx, cfg.Resources.Lexicon, logger), opts...)

	// Examples, then warm-up, off the start-up path.
	examples := glossary.ResolveSource(cfg.Resources.Examples, assets, web.ExamplesPath)
	go app.LoadExamples(context.WithoutCancel(ctx), examples, cfg.Cache.Warm && c != nil)

	return app, cleanup, nil
}

// watchGlossary reloads the store when a local glossary file changes.
// Remote and embedded glossaries are not watched.
func watchGlossary(ctx context.Context, store *glossary.Store, location string, logger *slog.Logger) {
	src, ok := glossary.ResolveSource(location, nil, "").(glossary.FileSource)
	if !ok {
		logger.Warn("glossary watch needs a local file", slog.String("source", location))
		return
	}
	w, err := glossary.NewWatcher(store, src.Path)
	if err != nil {
		logger.Warn("glossary watch unavailable", slog.Any("error", err))
		return
	}
	logger.Info("watching glossary", slog.String("path", src.Path))
	go w.Run(ctx) //nolint:errcheck
}

// loadDictionary layers the configured lexicon over the built-in tables.
// Without a lexicon, or when it fails to load, the built-in tables are used.
func loadDictionary(ctx context.Context, location string, logger *slog.Logger) sarf.Dictionary {
	if location == "" {
		return sarf.StaticDictionary()
	}
	lx, err := provider.LoadLexicon(ctx, glossary.ResolveSource(location, nil, ""))
	if err != nil {
		logger.Warn("lexicon unavailable, using built-in tables", slog.Any("error", err))
		return sarf.StaticDictionary()
	}
	logger.Info("lexicon loaded",
		slog.String("source", location),
		slog.Int("verbs", len(lx.Verbs)),
		slog.Int("forms", len(lx.Morphology)),
	)
	return provider.WithStatic(lx)
}

// Assets returns the asset tree served at "/": root on disk when set,
// the embedded assets otherwise.
func Assets(root string) (fs.FS, error) {
	if root == "" {
		return web.Assets(), nil
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("server: asset root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("server: asset root %s is not a directory", root)
	}
	return os.DirFS(root), nil
}

// openCache builds the configured cache backend. A Redis backend that
// stays unreachable after retries degrades to the in-memory cache.
func openCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (sarf.AnalysisCache, func()) {
	noop := func() {}

	var c sarf.AnalysisCache
	cleanup := noop

	switch strings.ToLower(cfg.Backend) {
	case "none":
		logger.Info("analysis cache disabled")
		return nil, noop
	case "redis":
		rc, err := sarf.WithRetry(ctx, sarf.DefaultRetryConfig(), func() (*cache.RedisCache, error) {
			return cache.NewRedisCache(ctx, cache.RedisConfig{
				URL:       cfg.RedisURL,
				TTL:       cfg.TTL,
				KeyPrefix: cfg.KeyPrefix,
				Timeout:   500 * time.Millisecond,
			})
		})
		if err != nil {
			logger.Warn("redis unavailable, using in-memory cache", slog.Any("error", err))
			c = cache.NewInMemoryCache(cfg.TTL)
			break
		}
		logger.Info("analysis cache connected", slog.String("backend", "redis"))
		c = rc
		cleanup = func() {
			if err := rc.Close(); err != nil {
				logger.Warn("redis close failed", slog.Any("error", err))
			}
		}
	default:
		c = cache.NewInMemoryCache(cfg.TTL)
	}

	if cfg.Preload != "" {
		res, err := cache.NewImporter(c).ImportFromFile(cfg.Preload)
		if err != nil {
			logger.Warn("cache preload failed", slog.String("path", cfg.Preload), slog.Any("error", err))
		} else {
			logger.Info("cache preloaded", slog.String("path", cfg.Preload), slog.Int("imported", res.Imported))
		}
	}

	return c, cleanup
}
