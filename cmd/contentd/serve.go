package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkroom/cms/internal/api"
	"github.com/inkroom/cms/internal/core/ports"
	"github.com/inkroom/cms/internal/core/service"
	mongorepo "github.com/inkroom/cms/internal/infrastructure/db/mongo"
	"github.com/inkroom/cms/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API. When ADMIN_USERNAME is set, an admin account with
that name is created on first start.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := open(ctx, true)
		if err != nil {
			return err
		}
		defer s.close(context.Background())

		if s.cfg.Admin.Username != "" {
			if err := seedAdmin(ctx, s, ports.CreateUserInput{
				Username: s.cfg.Admin.Username,
				Email:    s.cfg.Admin.Email,
				Password: s.cfg.Admin.Password,
			}); err != nil {
				return err
			}
		}

		e := api.NewRouter(s.cfg, s.db, s.redis, s.log)

		errCh := make(chan error, 1)
		go func() {
			s.log.Info().Str("port", s.cfg.Port).Str("env", s.cfg.Env).Msg("http server listening")
			if err := e.Start(":" + s.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return err
			}
		case <-ctx.Done():
		}

		s.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

func seedAdmin(ctx context.Context, s *stores, in ports.CreateUserInput) error {
	users := service.NewUserAdminService(
		mongorepo.NewUserRepository(s.db),
		service.PasswordPolicy{MinLength: s.cfg.PasswordMinLength},
		logger.Component("users"),
	)

	u, created, err := users.EnsureAdmin(ctx, in)
	if err != nil {
		return err
	}
	if !created {
		s.log.Info().Str("username", u.Username).Msg("admin account already present")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
