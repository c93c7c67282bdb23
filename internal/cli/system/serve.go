package system

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/config"
	"github.com/julianstephens/studylit/internal/keyring"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/server"
)

type ServeCmd struct {
	IssueToken bool          `help:"Print a bearer token for the configured user and exit." name:"issue-token"`
	TokenTTL   time.Duration `help:"Lifetime of an issued token." name:"token-ttl" default:"720h"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	cfg, err := config.ReadServerEnv()
	if err != nil {
		return fmt.Errorf("failed to read server environment: %w", err)
	}
	if cfg.JWTSecret == "" {
		secret, err := keyring.GetJWTSecret()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return errors.New("no JWT secret: set STUDYLIT_JWT_SECRET or run 'studylit keyring set-jwt-secret'")
			}
			return err
		}
		cfg.JWTSecret = secret
	}

	if c.IssueToken {
		auth, err := server.NewAuthenticator(cfg.JWTSecret, cfg.JWTIssuer)
		if err != nil {
			return err
		}
		token, err := auth.Issue(ctx.UserID, c.TokenTTL)
		if err != nil {
			return fmt.Errorf("failed to sign token: %w", err)
		}
		fmt.Fprintln(cli.Out, token)
		return nil
	}

	lock, err := server.AcquireLockfile(filepath.Dir(config.ExpandPath(ctx.ConfigPath)), cfg.Addr())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to remove server lockfile", "path", lock.Path(), "error", err)
		}
	}()

	srv, err := server.New(cfg, server.Services{
		Todos:    ctx.Todos,
		Study:    ctx.Study,
		Notes:    ctx.Notes,
		Profiles: ctx.Profiles,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.Out, "Serving %s on http://%s\n", cfg.Env, cfg.Addr())
	return srv.Run(ctx.Ctx)
}
