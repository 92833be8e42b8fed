package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/portfolio-cards/gradecard/internal/web"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the card as a web page",
	Long: `Serves the card as a server-rendered HTML page plus a small JSON API:

  GET  /                  card page (?tipo=..&disciplina=.. opens the score detail)
  POST /notas/adicionar   add a score
  POST /notas/editar      edit a score
  POST /notas/excluir     delete a score
  POST /alerta/ok         dismiss the acknowledgement
  GET  /api/card          profile and grades as JSON
  GET  /healthz           liveness`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	card, err := web.NewServer(svc, web.Options{
		Profile:    cfg.Profile,
		FlashDelay: cfg.FlashDelay,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	addr := cfg.Listen
	if listenAddr != "" {
		addr = listenAddr
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      card.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("card server starting", zap.String("addr", addr), zap.String("store", cfg.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-done:
	}
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
		return err
	}

	logger.Info("server stopped")
	return nil
}
