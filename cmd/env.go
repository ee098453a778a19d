package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fmaprep/internal/config"
	"github.com/abhisek/fmaprep/internal/content"
	"github.com/abhisek/fmaprep/internal/llm"
	"github.com/abhisek/fmaprep/internal/logging"
	"github.com/abhisek/fmaprep/internal/mathrender"
	"github.com/abhisek/fmaprep/internal/store"
	"github.com/abhisek/fmaprep/internal/tutor"
	"github.com/abhisek/fmaprep/internal/xp"
)

// env is what every command starts from: resolved config and a logger.
type env struct {
	cfg      *config.Config
	logger   *zap.Logger
	closeLog func() error
	dbFlag   string
}

func setup(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	dbFlag, _ := cmd.Flags().GetString("db")
	logger.Debug("starting", zap.String("command", cmd.Name()), zap.String("version", version))
	return &env{cfg: cfg, logger: logger, closeLog: closeLog, dbFlag: dbFlag}, nil
}

func (e *env) Close() {
	_ = e.logger.Sync()
	_ = e.closeLog()
}

// dbPath resolves --db, then the config/env value, then the XDG default.
func (e *env) dbPath() (string, error) {
	for _, p := range []string{e.dbFlag, e.cfg.DB} {
		if p != "" {
			return p, store.EnsureDir(p)
		}
	}
	return store.DefaultDBPath()
}

// openXP opens the database and loads the XP counter. The caller closes
// the store.
func (e *env) openXP(ctx context.Context) (*store.Store, *xp.Counter, error) {
	path, err := e.dbPath()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return st, xp.Load(ctx, st.Settings(), e.logger), nil
}

// tutor builds the explanation service. Without any configured or
// discoverable key it returns a disabled service and no error.
func (e *env) tutor(ctx context.Context) (*tutor.Service, error) {
	cfg := e.cfg.LLM
	if !cfg.Discover() {
		return tutor.NewService(nil, tutor.DefaultConfig()), nil
	}
	provider, err := llm.New(ctx, cfg, e.logger)
	if err != nil {
		return tutor.NewService(nil, tutor.DefaultConfig()), err
	}
	e.logger.Info("tutor enabled", zap.String("provider", cfg.Provider), zap.String("model", provider.ModelID()))
	return tutor.NewService(provider, tutor.DefaultConfig()), nil
}

// renderer loads the configured math engine synchronously, for commands
// that print and exit.
func (e *env) renderer() *mathrender.Renderer {
	engine, err := mathrender.Load(e.cfg.MathEngine)
	if err != nil {
		e.logger.Warn("math engine unavailable", zap.String("engine", e.cfg.MathEngine), zap.Error(err))
	}
	return mathrender.NewRenderer(engine)
}

func loadCatalog() (*content.Catalog, error) {
	c, err := content.Default()
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return c, nil
}

func warnTutor(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
	fmt.Fprintln(os.Stderr, "AI explanations will be unavailable.")
}

var errAborted = errors.New("aborted")
