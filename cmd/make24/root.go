package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"svw.info/make24/internal/config"
	"svw.info/make24/internal/evaluator"
	"svw.info/make24/internal/generator"
	"svw.info/make24/internal/hint"
	"svw.info/make24/internal/infrastructure/storage"
	"svw.info/make24/internal/logging"
	"svw.info/make24/internal/ports"
	"svw.info/make24/internal/solver"
	"svw.info/make24/internal/usecase"
	"svw.info/make24/internal/validator"
)

// app carries settings shared by every subcommand.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cfg, envErr := config.Load()
	a.cfg = cfg

	root := &cobra.Command{
		Use:          "make24",
		Short:        "Deal and check make-24 card puzzles",
		Long:         `make24 deals four cards from 1 to 13 that can always make 24 with + - × ÷ and parentheses, and checks answers built from them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			a.logger = logging.New(cmd.ErrOrStderr(), a.cfg.LogLevel, a.cfg.LogFormat)
			return nil
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfg.Store, "store", a.cfg.Store, "storage backend: fs|sqlite|memory")
	f.StringVar(&a.cfg.DataDir, "data-dir", a.cfg.DataDir, "directory for saved puzzles")
	f.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "debug|info|warn|error")
	f.StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "text|json")
	f.StringVar(&a.cfg.Solver, "solver", a.cfg.Solver, "solvability checker: exhaustive|parallel")
	f.IntVar(&a.cfg.Workers, "workers", a.cfg.Workers, "parallel checker workers (0 = GOMAXPROCS)")
	f.IntVar(&a.cfg.MaxAttempts, "max-attempts", a.cfg.MaxAttempts, "draws before generation gives up (0 = unbounded)")
	f.StringVar(&a.cfg.Locale, "locale", a.cfg.Locale, "message language, e.g. en-US or zh-CN")

	root.AddCommand(
		newGenerateCmd(a),
		newSolvableCmd(a),
		newCheckCmd(a),
		newServeCmd(a),
		newPlayCmd(a),
	)
	return root
}

func (a *app) checker() ports.Checker {
	if a.cfg.Solver == "parallel" {
		return solver.NewParallelChecker(a.cfg.Workers)
	}
	return solver.NewExhaustiveChecker()
}

// openStorage returns the configured backend and its closer.
func (a *app) openStorage(ctx context.Context) (ports.Storage, func() error, error) {
	switch a.cfg.Store {
	case "sqlite":
		if err := os.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		db, err := storage.OpenSQLite(ctx, filepath.Join(a.cfg.DataDir, "make24.db"))
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case "memory":
		db, err := storage.OpenSQLite(ctx, ":memory:")
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		if err := os.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		return storage.NewFS(a.cfg.DataDir), func() error { return nil }, nil
	}
}

// service wires providers into use cases. Storage is opened only when
// persist is set; the returned closer is always safe to call.
func (a *app) service(ctx context.Context, persist bool) (*usecase.Service, func() error, error) {
	c := a.checker()
	g := generator.NewRandomGenerator(c, generator.WithMaxAttempts(a.cfg.MaxAttempts))
	uc := usecase.NewService(c, g, evaluator.New(), validator.New(), hint.NewNextToken(), nil)
	if !persist {
		return uc, func() error { return nil }, nil
	}
	st, closeFn, err := a.openStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	uc.Storage = st
	a.logger.Debug("storage opened", "store", a.cfg.Store, "dir", a.cfg.DataDir)
	return uc, closeFn, nil
}
