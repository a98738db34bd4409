// Package secrets implements the repository secret commands.
package secrets

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/friuns/vibehub/internal/commands"
	"github.com/friuns/vibehub/internal/config"
	"github.com/friuns/vibehub/internal/secretbox"
)

// NewSecretsCmd creates the secrets command group.
func NewSecretsCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Manage repository Actions secrets",
	}

	cmd.AddCommand(newListCmd(configFile, loadConfig))
	cmd.AddCommand(newSetCmd(configFile, loadConfig))
	cmd.AddCommand(newDeleteCmd(configFile, loadConfig))

	return cmd
}

func newListCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:          "list [owner/repo]",
		Short:        "List secret names (values are never readable)",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			owner, repo, err := commands.ParseRepoArg(args[0])
			if err != nil {
				return err
			}

			bc := &commands.BaseCommand{ConfigFile: configFile, LoadConfig: loadConfig}
			if err := bc.Init(); err != nil {
				return err
			}
			defer bc.Close()

			secrets, err := bc.Client.ListSecrets(bc.Context, owner, repo)
			if err != nil {
				return err
			}

			table := commands.NewTable(cobraCmd.OutOrStdout())
			fmt.Fprintln(table, "NAME\tUPDATED")
			for _, s := range secrets {
				fmt.Fprintf(table, "%s\t%s\n", s.Name, commands.FormatAge(s.UpdatedAt))
			}
			return table.Flush()
		},
	}
}

func newSetCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:          "set [owner/repo] [name] [value]",
		Short:        "Create or update a secret",
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			owner, repo, err := commands.ParseRepoArg(args[0])
			if err != nil {
				return err
			}
			name, value := args[1], args[2]

			bc := &commands.BaseCommand{ConfigFile: configFile, LoadConfig: loadConfig}
			if err := bc.Init(); err != nil {
				return err
			}
			defer bc.Close()

			keyID, publicKey, err := bc.Client.GetSecretsPublicKey(bc.Context, owner, repo)
			if err != nil {
				return err
			}

			encrypted, err := secretbox.Encrypt(publicKey, value)
			if err != nil {
				return fmt.Errorf("failed to encrypt secret %s: %w", name, err)
			}

			if err := bc.Client.PutSecret(bc.Context, owner, repo, name, keyID, encrypted); err != nil {
				return err
			}

			fmt.Fprintf(cobraCmd.OutOrStdout(), "Set secret %s in %s/%s\n", name, owner, repo)
			return nil
		},
	}
}

func newDeleteCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:          "delete [owner/repo] [name]",
		Short:        "Delete a secret",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			owner, repo, err := commands.ParseRepoArg(args[0])
			if err != nil {
				return err
			}

			bc := &commands.BaseCommand{ConfigFile: configFile, LoadConfig: loadConfig}
			if err := bc.Init(); err != nil {
				return err
			}
			defer bc.Close()

			if err := bc.Client.DeleteSecret(bc.Context, owner, repo, args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cobraCmd.OutOrStdout(), "Deleted secret %s from %s/%s\n", args[1], owner, repo)
			return nil
		},
	}
}
