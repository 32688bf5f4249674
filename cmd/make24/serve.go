package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	httpadapter "svw.info/make24/internal/adapters/http"
	"svw.info/make24/internal/i18n"
	"svw.info/make24/web"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and the web game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), a)
		},
	}
	cmd.Flags().StringVar(&a.cfg.Addr, "addr", a.cfg.Addr, "listen address")
	cmd.Flags().Float64Var(&a.cfg.RateLimit, "rate-limit", a.cfg.RateLimit, "API requests per second (0 = unlimited)")
	cmd.Flags().IntVar(&a.cfg.RateBurst, "rate-burst", a.cfg.RateBurst, "API request burst")
	return cmd
}

func runServe(ctx context.Context, a *app) error {
	uc, closeFn, err := a.service(ctx, true)
	if err != nil {
		return err
	}
	defer closeFn()

	// Wire providers → use cases → HTTP adapter
	h := httpadapter.New(uc, i18n.Default(), a.cfg.Locale)
	mux := http.NewServeMux()
	h.Register(mux)
	h.RegisterPages(mux, web.Templates(), web.StaticFS())

	limiter := httpadapter.NewLimiter(a.cfg.RateLimit, a.cfg.RateBurst)
	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           httpadapter.RequestLogger(a.logger, httpadapter.RateLimit(limiter, mux)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", a.cfg.Addr, "store", a.cfg.Store, "dir", a.cfg.DataDir, "solver", a.cfg.Solver)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("server error", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
