package main

import (
	"accounts/pkg/domain"
	"accounts/pkg/valueobject"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// validateCommand constructs the 'validate' subcommand that runs the rules of
// a value object type against a value and prints the outcome.
func validateCommand() *cobra.Command {
	types := make([]string, 0, len(domain.Types()))
	for _, t := range domain.Types() {
		types = append(types, string(t))
	}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validates a value against a value object type",
		Long:  "Validates a value against a value object type. Known types: " + strings.Join(types, ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, _ := cmd.Flags().GetString("type")
			value, _ := cmd.Flags().GetString("value")

			v, err := domain.Parse(valueobject.Type(typ), value)
			var voErr *valueobject.Error
			switch {
			case errors.As(err, &voErr):
				fmt.Fprintf(cmd.OutOrStdout(), "invalid %s\nfamily: %s\nkind: %s\nmessage: %s\n",
					typ, voErr.Family.Code(), voErr.Kind(), voErr.Error())

				return err //nolint: wrapcheck
			case err != nil:
				return err //nolint: wrapcheck
			}

			fmt.Fprintf(cmd.OutOrStdout(), "valid %s\nlength: %d\n", v.Type(), valueobject.Length(v.String()))

			return nil
		},
	}

	cmd.Flags().String("type", "", "Value object type")
	cmd.Flags().String("value", "", "Value to validate")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}
