package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmaresco/cellarscan/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the label extraction HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		auth := server.NewStaticTokenAuthenticator(cfg.Server.AuthTokens)
		srv := server.New(e.Pipeline, e.Wines, auth, cfg.Server.RequestTimeout, slog.Default())

		addr := serveAddr
		if addr == "" {
			addr = cfg.Server.Addr
		}
		httpSrv := &http.Server{
			Addr:    addr,
			Handler: srv.Router(cfg.Server.AllowedOrigins),
		}

		go func() {
			<-ctx.Done()
			slog.Info("server.shutdown.start")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				slog.Error("server.shutdown.failed", "error", err)
			}
		}()

		slog.Info("server.listen", "addr", addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		slog.Info("server.shutdown.done")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
