// Package pr implements the pull request commands.
package pr

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/friuns/vibehub/internal/cache"
	"github.com/friuns/vibehub/internal/commands"
	"github.com/friuns/vibehub/internal/config"
	"github.com/friuns/vibehub/internal/github"
)

// NewPRCmd creates the pr command group.
func NewPRCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pr",
		Short: "Inspect and merge pull requests",
	}

	cmd.AddCommand(newShowCmd(configFile, loadConfig))
	cmd.AddCommand(newMergeCmd(configFile, loadConfig))

	return cmd
}

func newShowCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	var cachedOnly bool

	cmd := &cobra.Command{
		Use:          "show [owner/repo] [number]",
		Short:        "Show pull request details",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			owner, repo, err := commands.ParseRepoArg(args[0])
			if err != nil {
				return err
			}
			number, err := commands.ParseNumberArg(args[1])
			if err != nil {
				return err
			}

			bc := &commands.BaseCommand{ConfigFile: configFile, LoadConfig: loadConfig}
			if err := bc.Init(); err != nil {
				return err
			}
			defer bc.Close()

			details, fromCache, err := commands.FetchWithCache(bc.Cache, cache.PRDetailsKey(owner, repo, number), bc.Config.TTL(), cachedOnly, func() (*github.PRDetails, error) {
				return bc.Client.GetPullRequest(bc.Context, owner, repo, number)
			})
			if err != nil {
				return err
			}

			out := cobraCmd.OutOrStdout()
			state := details.State
			if details.Merged {
				state = "merged"
			}
			fmt.Fprintf(out, "PR #%d: %s\n", details.Number, details.Title)
			fmt.Fprintf(out, "State: %s\n", state)
			fmt.Fprintf(out, "Head:  %s\n", details.HeadSHA)
			fmt.Fprintf(out, "By:    %s\n", details.User)
			if details.Body != "" {
				fmt.Fprintf(out, "\n%s\n", details.Body)
			}
			if fromCache {
				fmt.Fprintln(out, "(cached)")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&cachedOnly, "cached", false, "Serve cached details without refreshing when they are fresh")

	return cmd
}

func newMergeCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:          "merge [owner/repo] [number]",
		Short:        "Merge a pull request",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			owner, repo, err := commands.ParseRepoArg(args[0])
			if err != nil {
				return err
			}
			number, err := commands.ParseNumberArg(args[1])
			if err != nil {
				return err
			}
			if method != "merge" && method != "squash" && method != "rebase" {
				return fmt.Errorf("invalid merge method %q (use merge, squash or rebase)", method)
			}

			bc := &commands.BaseCommand{ConfigFile: configFile, LoadConfig: loadConfig}
			if err := bc.Init(); err != nil {
				return err
			}
			defer bc.Close()

			if err := bc.Client.MergePullRequest(bc.Context, owner, repo, number, method); err != nil {
				return err
			}

			fmt.Fprintf(cobraCmd.OutOrStdout(), "Merged PR #%d\n", number)
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", "squash", "Merge method: merge, squash or rebase")

	return cmd
}
