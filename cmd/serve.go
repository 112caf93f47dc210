package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lernwort/backend/internal/auth"
	"github.com/lernwort/backend/internal/database"
	"github.com/lernwort/backend/internal/respond"
	"github.com/lernwort/backend/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply migrations and start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		skipMigrate, _ := cmd.Flags().GetBool("skip-migrate")

		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		secret, err := jwtSecret(cfg, logger)
		if err != nil {
			return err
		}

		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if !skipMigrate {
			if err := database.MigrateUp(cfg); err != nil {
				return err
			}
			logger.Info("database migrations applied")
		}

		svc, err := newServices(cfg, db, logger)
		if err != nil {
			return err
		}
		issuer := auth.NewIssuer(secret, cfg.Auth.TokenTTL)
		rs := respond.Responder{Log: logger, ExposeErrors: cfg.IsDevelopment()}
		router := server.NewRouter(svc.handlers(issuer, rs), issuer, cfg.Server.CORSOrigins, logger)
		srv := server.New(cfg.Server.Port, router, logger)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case sig := <-sigCh:
			logger.Infof("received signal: %s, shutting down", sig)
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		case err := <-errCh:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Bool("skip-migrate", false, "do not apply pending migrations on start")
}
