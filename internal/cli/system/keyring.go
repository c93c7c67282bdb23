package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/keyring"
	"github.com/julianstephens/studylit/internal/storage/postgres"
)

// KeyringSetCmd stores the database connection string in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !postgres.IsConnString(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	_, err := postgres.ValidateConnString(cmd.ConnectionString)
	if err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			fmt.Fprintln(cli.Out, "⚠️  Warning: Connection string contains embedded credentials.")
			fmt.Fprintln(cli.Out, "   It will be stored as-is in the encrypted OS keyring.")
		} else {
			return fmt.Errorf("invalid connection string: %w", err)
		}
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Fprintln(cli.Out, "✓ Connection string stored successfully in OS keyring")
	fmt.Fprintf(cli.Out, "  Set db = %q in your config to use it\n", cli.KeyringDB)
	return nil
}

// KeyringSetJWTSecretCmd stores the API token signing secret in the OS keyring
type KeyringSetJWTSecretCmd struct {
	Secret string `arg:"" help:"HS256 signing secret shared with the identity provider."`
}

func (cmd *KeyringSetJWTSecretCmd) Run(ctx *cli.Context) error {
	if err := keyring.SetJWTSecret(cmd.Secret); err != nil {
		return fmt.Errorf("failed to store JWT secret in keyring: %w", err)
	}
	fmt.Fprintln(cli.Out, "✓ JWT secret stored successfully in OS keyring")
	return nil
}

// KeyringDeleteCmd removes stored secrets from the OS keyring
type KeyringDeleteCmd struct {
	JWT bool `help:"Delete the JWT secret instead of the connection string." name:"jwt"`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	what, del := "connection string", keyring.DeleteConnectionString
	if cmd.JWT {
		what, del = "JWT secret", keyring.DeleteJWTSecret
	}

	if err := del(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", what)
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", what, err)
	}

	fmt.Fprintf(cli.Out, "✓ %s deleted from OS keyring\n", strings.ToUpper(what[:1])+what[1:])
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Fprintln(cli.Out, "❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	fmt.Fprintln(cli.Out, "✓ OS keyring is available")

	if connStr, err := keyring.GetConnectionString(); err == nil {
		fmt.Fprintf(cli.Out, "✓ Connection string is stored in keyring: %s\n", maskPassword(connStr))
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Fprintln(cli.Out, "ℹ No connection string stored in keyring")
	}
	if _, err := keyring.GetJWTSecret(); err == nil {
		fmt.Fprintln(cli.Out, "✓ JWT secret is stored in keyring")
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Fprintln(cli.Out, "ℹ No JWT secret stored in keyring")
	}
	return nil
}

// maskPassword masks passwords in connection strings for display
func maskPassword(connStr string) string {
	if postgres.IsURL(connStr) {
		if idx := strings.Index(connStr, "://"); idx != -1 {
			remaining := connStr[idx+3:]
			// The last @ separates user info from host
			if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
				userInfo := remaining[:atIdx]
				if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
					return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
				}
			}
		}
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		masked := make([]string, 0, len(parts))
		for _, part := range parts {
			if strings.HasPrefix(part, "password=") {
				masked = append(masked, "password=****")
			} else {
				masked = append(masked, part)
			}
		}
		return strings.Join(masked, " ")
	}

	return connStr
}
