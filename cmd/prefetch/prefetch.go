// Package prefetch implements the cache warming command.
package prefetch

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/friuns/vibehub/internal/cache"
	"github.com/friuns/vibehub/internal/commands"
	"github.com/friuns/vibehub/internal/config"
	"github.com/friuns/vibehub/internal/github"
	"github.com/friuns/vibehub/internal/prefetch"
)

// NewPrefetchCmd creates the prefetch command.
func NewPrefetchCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "prefetch",
		Short: "Warm the cache for your most recently updated repositories",
		Long: `Warm the cache for the most recently updated repositories: issue
lists, workflow runs, expanded issue bundles and pull request details.
A run within the prefetch window of the previous one is a no-op unless
--force is given.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			bc := &commands.BaseCommand{ConfigFile: configFile, LoadConfig: loadConfig}
			if err := bc.Init(); err != nil {
				return err
			}
			defer bc.Close()

			repos, _, err := commands.FetchWithCache(bc.Cache, cache.ReposKey(), bc.Config.TTL(), true, func() ([]github.Repository, error) {
				return bc.Client.ListRepositories(bc.Context)
			})
			if err != nil {
				return err
			}

			if force {
				bc.Cache.Clear(cache.LastPrefetchKey())
			}

			p := prefetch.NewPrefetcher(bc.Client, bc.Cache, prefetch.Config{
				TopRepoCount: bc.Config.TopRepoCount,
				IssueLimit:   bc.Config.IssuePrefetchLimit,
				BatchSize:    bc.Config.PrefetchBatchSize,
				PRLimit:      bc.Config.PRPrefetchLimit,
				SkipWindow:   bc.Config.Window(),
			})
			p.TopRepos(bc.Context, repos)

			fmt.Fprintln(cobraCmd.OutOrStdout(), "Prefetch complete")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Run even when the previous prefetch is still recent")

	return cmd
}
