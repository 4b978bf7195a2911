// File: cmd/policy.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/envlens-cli/internal/policy"
)

// newPolicyCmd groups policy-related subcommands.
func newPolicyCmd() *cobra.Command {
	policyCmd := &cobra.Command{
		Use:   "policy",
		Short: "Work with policy files.",
	}

	initCmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write an example policy file to get started.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := policy.WriteExample(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example policy written to %s\n", args[0])
			return nil
		},
	}

	lintCmd := &cobra.Command{
		Use:   "lint <path>",
		Short: "Validate a policy file without running an audit.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, err := policy.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Policy OK: %d required, %d forbidden, %d patterns\n",
				len(rule.Required), len(rule.Forbidden), len(rule.Patterns))
			return nil
		},
	}

	policyCmd.AddCommand(initCmd, lintCmd)
	return policyCmd
}

func init() {
	rootCmd.AddCommand(newPolicyCmd())
}
