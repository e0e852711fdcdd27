/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/valpere/opustran/internal/config"
	"github.com/valpere/opustran/internal/detector"
	"github.com/valpere/opustran/internal/gateway"
	"github.com/valpere/opustran/internal/lang"
	"github.com/valpere/opustran/internal/server"
	"github.com/valpere/opustran/internal/translator"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the translation HTTP server",
	Long: `Start the HTTP server exposing POST /translate.

The server accepts text plus a target language code, detects the source
language, and routes the request to the pretrained model bound to that
exact language pair.

Available backends:
  - marian   self-hosted bridge serving the opus-mt artifacts (default)
  - google   Google Cloud Translation

Configuration is read from the environment: SERVER_HOST, SERVER_PORT,
TRANSLATOR_BACKEND, MARIAN_URL, MARIAN_TIMEOUT_SECONDS,
GOOGLE_CREDENTIALS, GOOGLE_PROJECT_ID.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		ctx := context.Background()

		var binder translator.Binder
		switch cfg.Translator.Backend {
		case "google":
			google, err := translator.NewGoogleBinder(ctx, cfg.Google.Credentials)
			if err != nil {
				return fmt.Errorf("failed to initialize google backend: %w", err)
			}
			defer google.Close()
			binder = google
		default:
			binder = translator.NewMarianClient(cfg.Marian.URL, cfg.Marian.Timeout)
		}

		// The bridge may still be loading models; coverage is validated
		// below either way, so this is a warning, not a failure.
		if err := binder.IsAvailable(ctx); err != nil {
			logger.Warn("Translation backend not reachable yet",
				zap.String("backend", binder.Name()),
				zap.Error(err),
			)
		}

		bank, err := translator.FromBinder(binder)
		if err != nil {
			return fmt.Errorf("failed to build model bank: %w", err)
		}

		targets := lang.SupportedTargets()
		names := make([]string, len(targets))
		for i, code := range targets {
			names[i] = fmt.Sprintf("%s (%s)", lang.DisplayName(code), code)
		}
		logger.Info("Model bank ready",
			zap.String("backend", bank.Name()),
			zap.Int("pairs", len(bank.Pairs())),
			zap.Strings("targets", names),
		)

		gw := gateway.New(detector.New(), bank, logger)

		srv := &http.Server{
			Addr:        cfg.Server.Addr(),
			Handler:     server.New(gw, logger),
			ReadTimeout: 15 * time.Second,
			// Writes must outlive a slow model call.
			WriteTimeout: cfg.Marian.Timeout + 10*time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal("Failed to start server", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		logger.Info("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
