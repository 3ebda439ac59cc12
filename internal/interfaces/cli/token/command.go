// Package token implements the `lutrii token` command, used by operators to
// mint API tokens out of band. This is the only way to obtain an admin token.
package token

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lutrii-inc/lutrii/internal/infrastructure/auth"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/config"
)

var (
	env     string
	address string
	role    string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API token for a ledger address",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&address, "address", "a", "", "Ledger address the token authenticates (required)")
	cmd.Flags().StringVarP(&role, "role", "r", "user", "Token role (user, merchant, admin)")
	cmd.MarkFlagRequired("address")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch auth.Role(role) {
	case auth.RoleAdmin, auth.RoleUser, auth.RoleMerchant:
	default:
		return fmt.Errorf("unknown role %q", role)
	}

	secret := cfg.Auth.JWT.Secret
	if secret == "" || secret == "change-me-in-production" {
		fmt.Fprint(os.Stderr, "JWT secret: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to read secret: %w", err)
		}
		secret = string(raw)
	}

	jwtService := auth.NewJWTService(secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	pair, err := jwtService.Generate(address, auth.Role(role))
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Printf("access_token:  %s\n", pair.AccessToken)
	fmt.Printf("refresh_token: %s\n", pair.RefreshToken)
	fmt.Printf("expires_in:    %ds\n", pair.ExpiresIn)

	return nil
}
