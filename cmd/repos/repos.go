// Package repos implements the repository commands.
package repos

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/friuns/vibehub/internal/cache"
	"github.com/friuns/vibehub/internal/commands"
	"github.com/friuns/vibehub/internal/config"
	"github.com/friuns/vibehub/internal/github"
)

// NewReposCmd creates the repos command group.
func NewReposCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repos",
		Short: "List, create and delete repositories",
	}

	cmd.AddCommand(newListCmd(configFile, loadConfig))
	cmd.AddCommand(newCreateCmd(configFile, loadConfig))
	cmd.AddCommand(newDeleteCmd(configFile, loadConfig))

	return cmd
}

func newListCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	var cachedOnly bool

	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List your repositories, most recently updated first",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			bc := &commands.BaseCommand{ConfigFile: configFile, LoadConfig: loadConfig}
			if err := bc.Init(); err != nil {
				return err
			}
			defer bc.Close()

			repos, fromCache, err := commands.FetchWithCache(bc.Cache, cache.ReposKey(), bc.Config.TTL(), cachedOnly, func() ([]github.Repository, error) {
				return bc.Client.ListRepositories(bc.Context)
			})
			if err != nil {
				return err
			}

			table := commands.NewTable(cobraCmd.OutOrStdout())
			fmt.Fprintln(table, "REPOSITORY\tPRIVATE\tUPDATED\tDESCRIPTION")
			for _, r := range repos {
				private := ""
				if r.Private {
					private = "private"
				}
				fmt.Fprintf(table, "%s\t%s\t%s\t%s\n", r.FullName, private, commands.FormatAge(r.UpdatedAt), commands.Truncate(r.Description, 60))
			}
			if err := table.Flush(); err != nil {
				return err
			}
			if fromCache {
				fmt.Fprintln(cobraCmd.OutOrStdout(), "(cached)")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&cachedOnly, "cached", false, "Serve the cached list without refreshing when it is fresh")

	return cmd
}

func newCreateCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	var description string
	var private bool

	cmd := &cobra.Command{
		Use:          "create [name]",
		Short:        "Create a repository",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			bc := &commands.BaseCommand{ConfigFile: configFile, LoadConfig: loadConfig}
			if err := bc.Init(); err != nil {
				return err
			}
			defer bc.Close()

			repo, err := bc.Client.CreateRepository(bc.Context, args[0], description, private)
			if err != nil {
				return err
			}

			fmt.Fprintf(cobraCmd.OutOrStdout(), "Created %s\n", repo.FullName)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Repository description")
	cmd.Flags().BoolVar(&private, "private", false, "Create a private repository")

	return cmd
}

func newDeleteCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:          "delete [owner/repo]",
		Short:        "Delete a repository",
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

			if err := bc.Client.DeleteRepository(bc.Context, owner, repo); err != nil {
				return err
			}

			fmt.Fprintf(cobraCmd.OutOrStdout(), "Deleted %s/%s\n", owner, repo)
			return nil
		},
	}
}
