package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/studygenie/studygenie/internal/catalog"
	"github.com/studygenie/studygenie/internal/config"
	"github.com/studygenie/studygenie/internal/i18n"
	"github.com/studygenie/studygenie/internal/llm"
	"github.com/studygenie/studygenie/internal/logging"
	"github.com/studygenie/studygenie/internal/progress"
	"github.com/studygenie/studygenie/internal/quiz"
	"github.com/studygenie/studygenie/internal/screens/shared"
	"github.com/studygenie/studygenie/internal/store"
	"github.com/studygenie/studygenie/internal/tutor"
)

// envOpts selects what a command needs from its environment.
type envOpts struct {
	// logToFile sends logs next to the database instead of stderr, for
	// commands that own the terminal.
	logToFile bool
	// requireStore fails the command when the database cannot be opened.
	// Otherwise the command runs without a tracker.
	requireStore bool
}

// env is everything a command runs against.
type env struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *store.Store
	provider llm.Provider
	deps     *shared.Deps
}

// Close releases the store and flushes the logger.
func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	_ = e.logger.Sync()
}

// setupEnv loads configuration, applies the persistent flags and wires the
// catalog, engine, tutor and tracker.
func setupEnv(cmd *cobra.Command, opts envOpts) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if loc, _ := cmd.Flags().GetString("locale"); loc != "" {
		cfg.Locale = loc
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DBPath = db
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	e := &env{cfg: cfg}
	if opts.logToFile {
		e.logger, err = logging.NewFile(cfg.Env, filepath.Join(filepath.Dir(dbPath), "studygenie.log"))
	} else {
		e.logger, err = logging.New(cfg.Env)
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	bundle := i18n.New()
	if !bundle.Has(cfg.Locale) {
		e.logger.Warn("unknown locale, using default", zap.String("locale", cfg.Locale))
		cfg.Locale = i18n.DefaultLocale
	}

	var sink llm.EventSink
	if st, err := store.Open(dbPath); err != nil {
		if opts.requireStore {
			return nil, fmt.Errorf("open store: %w", err)
		}
		e.logger.Warn("store unavailable, progress will not be saved", zap.String("path", dbPath), zap.Error(err))
	} else {
		e.store = st
		sink = st.EventRepo()
	}

	if cfg.LLM.Enabled() {
		p, err := llm.NewProvider(ctx, cfg.LLM, sink, e.logger)
		if err != nil {
			e.logger.Warn("LLM provider not configured, AI features are off", zap.Error(err))
		} else {
			e.provider = p
		}
	}

	cat, err := buildCatalog(cfg, e.provider, e.logger)
	if err != nil {
		e.Close()
		return nil, err
	}

	var responder tutor.Responder = tutor.NewStaticResponder(nil)
	if e.provider != nil {
		responder = tutor.NewLLMResponder(e.provider, tutor.DefaultLLMConfig(), e.logger)
	}

	defaults, err := quizDefaults(cfg)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.deps = &shared.Deps{
		Engine:   quiz.New(cat, nil),
		Catalog:  cat,
		Defaults: defaults,
		Tutor:    responder,
		I18n:     bundle,
		Locale:   cfg.Locale,
		Logger:   e.logger,
		Now:      time.Now,
	}

	if e.store != nil {
		tr, err := progress.Load(ctx, cfg.Learner, e.store.EventRepo(), e.store.SnapshotRepo(), e.logger)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.deps.Tracker = tr
	}
	return e, nil
}

// buildCatalog layers the built-in bank, configured files and, when
// enabled, generated questions. A question id seen in an earlier source
// shadows later copies.
func buildCatalog(cfg *config.Config, provider llm.Provider, logger *zap.Logger) (quiz.Catalog, error) {
	sources := []quiz.Catalog{catalog.Default()}
	for _, p := range cfg.Catalog.Paths {
		f, err := catalog.Load(p)
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", p, err)
		}
		sources = append(sources, catalog.NewStatic(f))
	}
	if cfg.Catalog.Generate && provider != nil {
		gcfg := catalog.DefaultGeneratorConfig()
		gcfg.PerTier = cfg.Catalog.PerTier
		sources = append(sources, catalog.NewGenerator(provider, gcfg, logger))
	}
	return catalog.NewComposite(sources...), nil
}

func quizDefaults(cfg *config.Config) (quiz.Config, error) {
	d, ok := quiz.ParseDifficulty(cfg.Quiz.DefaultDifficulty)
	if !ok {
		return quiz.Config{}, fmt.Errorf("unknown difficulty %q", cfg.Quiz.DefaultDifficulty)
	}
	focus, ok := quiz.ParseFocus(cfg.Quiz.DefaultFocus)
	if !ok {
		return quiz.Config{}, fmt.Errorf("unknown focus mode %q", cfg.Quiz.DefaultFocus)
	}
	return quiz.Config{
		Difficulty:    d,
		QuestionCount: cfg.Quiz.DefaultCount,
		TimeLimit:     cfg.Quiz.TimeLimit,
		FocusMode:     focus,
	}, nil
}

// resolveDBPath returns the configured database path (--db flag or
// db_path), then STUDYGENIE_DB, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// requireTracker fails commands that read learner progress when no store
// could be opened.
func (e *env) requireTracker() (*progress.Tracker, error) {
	if e.deps.Tracker == nil {
		return nil, fmt.Errorf("no database available")
	}
	return e.deps.Tracker, nil
}
