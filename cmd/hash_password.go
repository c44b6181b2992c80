package main

import (
	"accounts/internal/account"
	"accounts/internal/config"
	"accounts/pkg/domain"
	"accounts/pkg/password"
	"fmt"

	"github.com/spf13/cobra"
)

// hashPasswordCommand constructs the 'hash-password' subcommand that validates
// a plain password and prints its Argon2id hash with the configured parameters.
func hashPasswordCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Prints the Argon2id hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plain, err := domain.NewPlainPassword(args[0])
			if err != nil {
				return err //nolint: wrapcheck
			}

			encoded, err := password.NewHasher(account.NewOptions(cfg).Password).Hash(plain.String())
			if err != nil {
				return fmt.Errorf("could not hash password: %w", err)
			}

			// the hasher's output must itself be a valid stored password
			if _, err := domain.NewArgon2idPassword(encoded); err != nil {
				return fmt.Errorf("hasher produced an unusable hash: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), encoded)

			return nil
		},
	}

	return cmd
}
