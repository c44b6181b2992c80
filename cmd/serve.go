package main

import (
	"accounts/internal/account"
	"accounts/internal/api"
	"accounts/internal/api/handler/v1handler"
	"accounts/internal/auth"
	"accounts/internal/config"
	"accounts/internal/worker"
	"accounts/pkg/domain"
	"accounts/pkg/logger"
	"accounts/pkg/mailer"
	"accounts/pkg/mailer/httpmail"
	"accounts/pkg/mailer/sesmail"
	"accounts/pkg/metrics"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server := api.NewServer(deps, api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// newMailer returns the mailer selected by the config.
func newMailer(ctx context.Context, cfg *config.Config) (mailer.Mailer, error) {
	if cfg.Mailer.Driver == config.MailerLog {
		return mailer.Log{VerifyURL: cfg.Verification.VerifyURL}, nil
	}

	from, err := domain.NewEmailAddress(cfg.Mailer.From)
	if err != nil {
		return nil, fmt.Errorf("invalid mailer sender: %w", err)
	}

	if cfg.Mailer.Driver == config.MailerSES {
		return sesmail.NewFromConfig(ctx, sesmail.Options{
			Region:    cfg.Mailer.Region,
			AccessKey: cfg.Mailer.AccessKey,
			SecretKey: cfg.Mailer.SecretKey,
			From:      from,
			VerifyURL: cfg.Verification.VerifyURL,
		})
	}

	return httpmail.New(&http.Client{Timeout: cfg.Mailer.Timeout}, httpmail.Options{
		Endpoint:  cfg.Mailer.Endpoint,
		APIKey:    cfg.Mailer.APIKey,
		From:      from,
		VerifyURL: cfg.Verification.VerifyURL,
	}), nil
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			mp, err := api.NewMeterProvider()
			if err != nil {
				logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
			}
			accountMetrics, err := metrics.NewAccount(mp.Meter(metrics.MeterName))
			if err != nil {
				logger.Fatal(ctx, "could not create account metrics", zap.Error(err))
			}

			mail, err := newMailer(ctx, cfg)
			if err != nil {
				logger.Fatal(ctx, "could not create mailer", zap.Error(err))
			}

			accounts := account.New(account.Deps{
				Storage: strg,
				Mailer:  mail,
				Metrics: accountMetrics,
			}, account.NewOptions(cfg))

			issuer, err := auth.NewIssuerFromConfig(cfg)
			if err != nil {
				logger.Fatal(ctx, "could not create token issuer", zap.Error(err))
			}
			verifier, err := auth.NewVerifierFromConfig(cfg)
			if err != nil {
				logger.Fatal(ctx, "could not create token verifier", zap.Error(err))
			}

			riverClient, err := worker.Start(ctx, strg.Pool, accounts, worker.Options{MaxWorkers: cfg.Worker.MaxWorkers})
			if err != nil {
				logger.Fatal(ctx, "could not start workers", zap.Error(err))
			}

			stopWebserver := setupServer(ctx, cfg, api.Deps{Deps: v1handler.Deps{
				Accounts: accounts,
				Issuer:   issuer,
				Verifier: verifier,
			}})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			logger.Info(ctx, "stopping workers...")
			if err := riverClient.Stop(shutdownCtx); err != nil {
				logger.Error(ctx, "could not stop workers", zap.Error(err))
			}
			if err := mp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(ctx, "could not shutdown meter provider", zap.Error(err))
			}
		},
	}

	return cmd
}
