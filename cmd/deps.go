package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/aperture/internal/catalog"
	"github.com/abhisek/aperture/internal/config"
	"github.com/abhisek/aperture/internal/evaluation"
	"github.com/abhisek/aperture/internal/llm"
	"github.com/abhisek/aperture/internal/logger"
	"github.com/abhisek/aperture/internal/progress"
	"github.com/abhisek/aperture/internal/session"
	"github.com/abhisek/aperture/internal/store"
)

// deps holds everything a command needs. Close releases it.
type deps struct {
	cfg      *config.Config
	log      *logger.Logger
	store    *store.Store
	progress *progress.Store
	catalog  *catalog.Catalog
}

// setup loads configuration, builds the logger, opens the database and
// loads progress. TUI commands log to a file so output does not corrupt the
// screen; everything else logs to stderr.
func setup(cmd *cobra.Command, logToFile bool) (*deps, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.NewLoader(nil).Load(configPath)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	} else if !logToFile {
		// Keep one-shot command output readable.
		cfg.Log.Level = "warn"
	}

	logOpts := logger.Options{Mode: "dev", Level: cfg.Log.Level}
	if logToFile {
		logOpts.Mode = "prod"
		logOpts.Path = cfg.Log.Path
		if logOpts.Path == "" {
			logOpts.Path = config.DefaultLogPath()
		}
	}
	log, err := logger.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	backend, err := progress.OpenBackend(cfg.Progress.Engine, st.KVRepo(), cfg.Progress.Path)
	if err != nil {
		st.Close()
		return nil, err
	}
	cat := catalog.Default()
	prog := progress.NewStore(backend, log, progress.WithLessons(cat.IDs()))
	prog.Load(cmd.Context())

	log.Debug("setup complete", "db", dbPath, "progress_engine", cfg.Progress.Engine, "llm_provider", cfg.LLM.Provider)

	return &deps{
		cfg:      cfg,
		log:      log,
		store:    st,
		progress: prog,
		catalog:  cat,
	}, nil
}

func (d *deps) Close() {
	_ = d.store.Close()
	d.log.Sync()
}

// evaluator builds the photo evaluation client on the configured provider.
func (d *deps) evaluator(ctx context.Context) (*evaluation.Client, error) {
	if err := d.cfg.LLM.Validate(); err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w\n\n"+
			"Set OPENROUTER_API_KEY (or GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY),\n"+
			"or APERTURE_LLM_PROVIDER=mock to try Aperture offline", err)
	}
	provider, err := buildProvider(ctx, d.cfg.LLM, d.store.EventRepo(), d.log)
	if err != nil {
		return nil, err
	}
	return evaluation.NewClient(provider, d.cfg.Evaluation, d.log), nil
}

// machine builds a lesson session over the loaded progress.
func (d *deps) machine(ev session.Evaluator, opts ...session.Option) *session.Machine {
	opts = append([]session.Option{session.WithLogger(d.log)}, opts...)
	return session.New(d.catalog, d.progress, ev, opts...)
}

// buildProvider is llm.NewProvider, except that the mock provider answers
// with a canned evaluation so the app is usable offline.
func buildProvider(ctx context.Context, cfg llm.Config, repo store.EventRepo, log *logger.Logger) (llm.Provider, error) {
	if cfg.Provider != "mock" {
		return llm.NewProvider(ctx, cfg, repo, log)
	}
	mock := llm.NewMockProvider()
	mock.Fallback = evaluation.OfflineResponse
	return llm.WithLogging(mock, cfg.Provider, repo, log), nil
}
