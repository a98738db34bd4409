// Package accounts implements the account management commands.
package accounts

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/friuns/vibehub/internal/auth"
	"github.com/friuns/vibehub/internal/commands"
	"github.com/friuns/vibehub/internal/config"
)

// NewAccountsCmd creates the accounts command group.
func NewAccountsCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage signed-in GitHub accounts",
		Long: `Manage the GitHub accounts vibehub knows about.

Each account is identified by its GitHub login. The active account
decides which token is used and which cache namespace is read.`,
	}

	cmd.AddCommand(newListCmd(configFile, loadConfig))
	cmd.AddCommand(newAddCmd(configFile, loadConfig))
	cmd.AddCommand(newSwitchCmd(configFile, loadConfig))
	cmd.AddCommand(newRemoveCmd(configFile, loadConfig))

	return cmd
}

func newListCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List known accounts",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			bc := &commands.BaseCommand{ConfigFile: configFile, LoadConfig: loadConfig}
			if err := bc.InitStore(); err != nil {
				return err
			}
			defer bc.Close()

			accounts := bc.Registry.List()
			if len(accounts) == 0 {
				fmt.Fprintln(cobraCmd.OutOrStdout(), "No accounts. Add one with 'vibehub accounts add --token <token>'.")
				return nil
			}

			active, _ := bc.Registry.Active()
			table := commands.NewTable(cobraCmd.OutOrStdout())
			fmt.Fprintln(table, "\tLOGIN\tNAME")
			for _, a := range accounts {
				marker := " "
				if a.ID == active.ID {
					marker = "*"
				}
				fmt.Fprintf(table, "%s\t%s\t%s\n", marker, a.ID, a.Profile.DisplayName)
			}
			return table.Flush()
		},
	}
}

func newAddCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:          "add",
		Short:        "Add an account from a personal access token",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			bc := &commands.BaseCommand{ConfigFile: configFile, LoadConfig: loadConfig}
			if err := bc.InitStore(); err != nil {
				return err
			}
			defer bc.Close()

			if token == "" {
				token = os.Getenv("GITHUB_TOKEN")
			}

			provider := &auth.TokenProvider{Token: token}
			identity, err := provider.SignIn(bc.Context)
			if err != nil {
				return fmt.Errorf("failed to sign in: %w", err)
			}

			acct := bc.Registry.AddOrUpdate(identity.Token, identity.Profile)
			fmt.Fprintf(cobraCmd.OutOrStdout(), "Added account %s\n", acct.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Personal access token (defaults to GITHUB_TOKEN)")

	return cmd
}

func newSwitchCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:          "switch [login]",
		Short:        "Make an account active",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			bc := &commands.BaseCommand{ConfigFile: configFile, LoadConfig: loadConfig}
			if err := bc.InitStore(); err != nil {
				return err
			}
			defer bc.Close()

			if !bc.Registry.SetActive(args[0]) {
				return fmt.Errorf("no account with login %q", args[0])
			}
			fmt.Fprintf(cobraCmd.OutOrStdout(), "Switched to %s\n", args[0])
			return nil
		},
	}
}

func newRemoveCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:          "remove [login]",
		Short:        "Remove an account and its cached data",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			bc := &commands.BaseCommand{ConfigFile: configFile, LoadConfig: loadConfig}
			if err := bc.InitStore(); err != nil {
				return err
			}
			defer bc.Close()

			bc.Registry.Remove(args[0])
			fmt.Fprintf(cobraCmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}
