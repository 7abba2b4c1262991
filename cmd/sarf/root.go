package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/sarf"
	"github.com/ZaguanLabs/sarf/builder"
	"github.com/ZaguanLabs/sarf/cache"
	"github.com/ZaguanLabs/sarf/config"
	"github.com/ZaguanLabs/sarf/glossary"
	"github.com/ZaguanLabs/sarf/provider"
	"github.com/ZaguanLabs/sarf/server"
	"github.com/ZaguanLabs/sarf/web"
)

// cli carries the global flags and output streams shared by subcommands.
type cli struct {
	stdout, stderr io.Writer
	cfgFile        string
	jsonOut        bool
	logLevel       string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   sarf.Name,
		Short: sarf.Description,
		Long: `sarf serves a small Arabic grammar explorer: mock translation of a few
English verbs, a fixed morphology table, a guided phrase builder and
cross-linked grammar tables with glossary tooltips.

The subcommands expose the same lexical tools on the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&c.cfgFile, "config", "c", "", "config file path (default: CONFIG_PATH or ./sarf.yaml)")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "output as JSON")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level for one-shot commands")

	glossaryCmd := &cobra.Command{
		Use:   "glossary",
		Short: "Inspect glossary resources",
	}
	glossaryCmd.AddCommand(c.newGlossaryLookupCommand(), c.newGlossaryDiffCommand())

	root.AddCommand(
		c.newServeCommand(),
		c.newAnalyzeCommand(),
		glossaryCmd,
		c.newBuilderCommand(),
		c.newWarmCommand(),
		c.newVersionCommand(),
	)
	return root
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func (c *cli) newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.cfgFile)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log, c.stderr)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, cleanup, err := server.Bootstrap(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			return server.New(cfg.Server, cfg.RateLimit, app).Run(ctx)
		},
	}
}

func (c *cli) newAnalyzeCommand() *cobra.Command {
	var lexicon string
	cmd := &cobra.Command{
		Use:   "analyze <input>...",
		Short: "Analyse Arabic tokens or translate English verbs",
		Long: `Analyse each argument the way the explorer does: Arabic input is looked up
in the morphology table (unknown tokens get a heuristic tense), English
input is translated first when the verb is known.

Examples:
  sarf analyze كتب
  sarf analyze write يذهب
  sarf analyze --json read`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(config.LogConfig{Level: c.logLevel}, c.stderr)
			var dict sarf.Dictionary
			if lexicon != "" {
				lx, err := provider.LoadLexicon(cmd.Context(), glossary.ResolveSource(lexicon, nil, ""))
				if err != nil {
					return err
				}
				dict = provider.WithStatic(lx)
			}
			a := sarf.NewAnalyzer(dict, sarf.WithLogger(logger))
			results := make([]sarf.Analysis, len(args))
			for i, in := range args {
				results[i] = a.Analyze(in)
			}

			if c.jsonOut {
				return c.printJSON(results)
			}
			for i, res := range results {
				if i > 0 {
					fmt.Fprintln(c.stdout)
				}
				printAnalysis(c.stdout, args[i], res)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&lexicon, "lexicon", "l", "", "extra lexicon path or URL layered over the built-in tables")
	return cmd
}

func printAnalysis(w io.Writer, input string, a sarf.Analysis) {
	m := a.Result.Morphology
	fmt.Fprintf(w, "Input:        %s (%s)\n", input, a.Kind)
	if a.Arabic != "" && a.Arabic != input {
		fmt.Fprintf(w, "Arabic:       %s\n", a.Arabic)
	}
	fmt.Fprintf(w, "Translation:  %s\n", a.Result.Translation)
	fmt.Fprintf(w, "Pattern:      %s\n", m.Pattern)
	fmt.Fprintf(w, "Root:         %s\n", m.Root)
	fmt.Fprintf(w, "Type:         %s\n", m.Type)
	fmt.Fprintf(w, "Grammar type: %s\n", a.Result.GrammarType)
}

func (c *cli) newGlossaryLookupCommand() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "lookup <term>",
		Short: "Show the glossary entry for a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(config.LogConfig{Level: c.logLevel}, c.stderr)
			store := glossary.New(glossary.ResolveSource(source, web.Assets(), web.GlossaryPath), glossary.WithLogger(logger))
			store.Load(cmd.Context())
			if err := store.LastError(); err != nil {
				return err
			}

			term := strings.TrimSpace(args[0])
			entry, ok := store.Lookup(term)
			if !ok {
				return fmt.Errorf("%s: %w", term, sarf.ErrNotFound)
			}

			if c.jsonOut {
				return c.printJSON(map[string]string{"term": term, "en": entry.En, "desc": entry.Desc})
			}
			fmt.Fprintf(c.stdout, "%s (%s)\n%s\n", term, entry.En, entry.Desc)
			return nil
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "", "glossary path or URL (default: embedded)")
	return cmd
}

type diffOutput struct {
	OldVersion string   `json:"oldVersion"`
	NewVersion string   `json:"newVersion"`
	Added      []string `json:"added"`
	Removed    []string `json:"removed"`
	Changed    []string `json:"changed"`
	Unchanged  int      `json:"unchanged"`
}

func (c *cli) newGlossaryDiffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Compare two glossary resources",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(config.LogConfig{Level: c.logLevel}, c.stderr)

			states := make([]glossary.State, 2)
			for i, loc := range args {
				if strings.TrimSpace(loc) == "" {
					return fmt.Errorf("glossary diff: empty location")
				}
				store := glossary.New(glossary.ResolveSource(loc, nil, ""), glossary.WithLogger(logger))
				states[i] = store.Load(cmd.Context())
				if err := store.LastError(); err != nil {
					return err
				}
			}

			d := glossary.Diff(states[0], states[1])
			out := diffOutput{
				OldVersion: d.OldVersion,
				NewVersion: d.NewVersion,
				Added:      nonNil(d.Added),
				Removed:    nonNil(d.Removed),
				Changed:    []string{},
				Unchanged:  d.Unchanged,
			}
			for _, ch := range d.Changed {
				out.Changed = append(out.Changed, ch.Term)
			}

			if c.jsonOut {
				return c.printJSON(out)
			}

			fmt.Fprintf(c.stdout, "%s -> %s\n", out.OldVersion, out.NewVersion)
			for _, t := range out.Added {
				fmt.Fprintf(c.stdout, "+ %s\n", t)
			}
			for _, t := range out.Removed {
				fmt.Fprintf(c.stdout, "- %s\n", t)
			}
			for _, t := range out.Changed {
				fmt.Fprintf(c.stdout, "~ %s\n", t)
			}
			stats := d.Stats()
			fmt.Fprintf(c.stdout, "%d added, %d removed, %d changed, %d unchanged\n",
				stats.Added, stats.Removed, stats.Changed, stats.Unchanged)
			return nil
		},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (c *cli) newBuilderCommand() *cobra.Command {
	st := builder.DefaultState()
	var (
		pattern, tense, pronoun string
		locale                  string
		validate                bool
	)
	cmd := &cobra.Command{
		Use:   "builder",
		Short: "Compose a phrase preview and validate it",
		Long: `Compose the builder preview for the given selections.

Examples:
  sarf builder --root كتب
  sarf builder --root كتب --tense imperative --pronoun أنا --validate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st.Pattern = builder.Pattern(pattern)
			st.Tense = builder.Tense(tense)
			st.Pronoun = builder.Pronoun(pronoun)

			b := builder.FromState(st, builder.NewMessages(locale), locale)
			p := b.Preview()

			if c.jsonOut {
				out := struct {
					State builder.State `json:"state"`
					builder.Preview
				}{b.State(), p}
				return c.printJSON(out)
			}

			fmt.Fprintln(c.stdout, p.Text)
			if validate {
				fmt.Fprintln(c.stdout, b.Verdict())
			} else if p.Valid {
				fmt.Fprintln(c.stdout, p.Status)
			} else {
				for _, is := range p.Issues {
					fmt.Fprintf(c.stdout, "- %s\n", is.Message)
				}
			}
			if validate && !p.Valid {
				return fmt.Errorf("validation failed with %d issue(s)", len(p.Issues))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&st.Root, "root", "", "root letters")
	cmd.Flags().StringVar(&pattern, "pattern", string(builder.PatternI), "pattern id (I, II, III)")
	cmd.Flags().StringVar(&tense, "tense", string(builder.TensePast), "tense (past, present, imperative)")
	cmd.Flags().StringVar(&pronoun, "pronoun", string(builder.PronounHuwa), "subject pronoun")
	cmd.Flags().StringVar(&locale, "locale", "ar", "message locale (ar, en)")
	cmd.Flags().BoolVar(&validate, "validate", false, "print the validation verdict; fail on issues")
	return cmd
}

func (c *cli) newWarmCommand() *cobra.Command {
	var (
		source  string
		export  string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Analyse every example and export the cache snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(config.LogConfig{Level: c.logLevel}, c.stderr)
			ex, err := glossary.LoadExamples(cmd.Context(), glossary.ResolveSource(source, web.Assets(), web.ExamplesPath), logger)
			if err != nil {
				return err
			}

			mem := cache.NewInMemoryCache(0)
			a := sarf.NewAnalyzer(nil, sarf.WithCache(mem), sarf.WithLogger(logger))
			if _, err := a.AnalyzeBatch(cmd.Context(), ex.All(), workers); err != nil {
				return err
			}

			meta := map[string]string{"version": sarf.Version}
			if export == "" || export == "-" {
				return cache.NewExporter(mem).Export(c.stdout, meta)
			}
			if err := cache.NewExporter(mem).ExportToFile(export, meta); err != nil {
				return err
			}
			fmt.Fprintf(c.stderr, "exported %d entries to %s\n", mem.Len(), export)
			return nil
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "", "examples path or URL (default: embedded)")
	cmd.Flags().StringVarP(&export, "export", "e", "-", "snapshot file, or - for stdout")
	cmd.Flags().IntVarP(&workers, "workers", "w", sarf.DefaultBatchWorkers, "concurrent workers")
	return cmd
}

func (c *cli) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(c.stdout, "%s %s\n", sarf.Name, version)
			if commit != "unknown" && commit != "" {
				fmt.Fprintf(c.stdout, "  commit:  %s\n", commit)
			}
			if buildDate != "unknown" && buildDate != "" {
				fmt.Fprintf(c.stdout, "  built:   %s\n", buildDate)
			}
			fmt.Fprintf(c.stdout, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
