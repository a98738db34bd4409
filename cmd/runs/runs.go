// Package runs implements the workflow run commands.
package runs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/friuns/vibehub/internal/cache"
	"github.com/friuns/vibehub/internal/commands"
	"github.com/friuns/vibehub/internal/config"
	"github.com/friuns/vibehub/internal/github"
)

// NewRunsCmd creates the runs command group.
func NewRunsCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect workflow runs and their artifacts",
	}

	cmd.AddCommand(newListCmd(configFile, loadConfig))
	cmd.AddCommand(newArtifactsCmd(configFile, loadConfig))

	return cmd
}

func newListCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	var cachedOnly bool

	cmd := &cobra.Command{
		Use:          "list [owner/repo]",
		Short:        "List recent workflow runs",
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

			runs, fromCache, err := commands.FetchWithCache(bc.Cache, cache.WorkflowRunsKey(owner, repo), bc.Config.TTL(), cachedOnly, func() ([]github.WorkflowRun, error) {
				return bc.Client.ListWorkflowRuns(bc.Context, owner, repo)
			})
			if err != nil {
				return err
			}

			table := commands.NewTable(cobraCmd.OutOrStdout())
			fmt.Fprintln(table, "RUN\tNAME\tSTATUS\tCONCLUSION\tSTARTED")
			for _, run := range runs {
				fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\n", run.ID, run.Name, run.Status, run.Conclusion, commands.FormatAge(run.CreatedAt))
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

func newArtifactsCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:          "artifacts [owner/repo] [run-id]",
		Short:        "List the artifacts of a workflow run",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			owner, repo, err := commands.ParseRepoArg(args[0])
			if err != nil {
				return err
			}
			runID, err := commands.ParseRunIDArg(args[1])
			if err != nil {
				return err
			}

			bc := &commands.BaseCommand{ConfigFile: configFile, LoadConfig: loadConfig}
			if err := bc.Init(); err != nil {
				return err
			}
			defer bc.Close()

			artifacts, err := bc.Client.ListRunArtifacts(bc.Context, owner, repo, runID)
			if err != nil {
				return err
			}

			table := commands.NewTable(cobraCmd.OutOrStdout())
			fmt.Fprintln(table, "ARTIFACT\tSIZE\tEXPIRED")
			for _, a := range artifacts {
				expired := ""
				if a.Expired {
					expired = "expired"
				}
				fmt.Fprintf(table, "%s\t%d\t%s\n", a.Name, a.SizeInBytes, expired)
			}
			return table.Flush()
		},
	}
}
