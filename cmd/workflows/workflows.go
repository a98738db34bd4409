// Package workflows implements the workflow file commands.
package workflows

import (
	"fmt"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/friuns/vibehub/internal/cache"
	"github.com/friuns/vibehub/internal/commands"
	"github.com/friuns/vibehub/internal/config"
	"github.com/friuns/vibehub/internal/github"
)

// NewWorkflowsCmd creates the workflows command group.
func NewWorkflowsCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflows",
		Short: "Inspect and copy workflow files",
	}

	cmd.AddCommand(newListCmd(configFile, loadConfig))
	cmd.AddCommand(newCopyCmd(configFile, loadConfig))

	return cmd
}

func newListCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	var cachedOnly bool

	cmd := &cobra.Command{
		Use:          "list [owner/repo]",
		Short:        "List the repository's workflow files",
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

			files, fromCache, err := commands.FetchWithCache(bc.Cache, cache.WorkflowFilesKey(owner, repo), bc.Config.TTL(), cachedOnly, func() ([]github.WorkflowFile, error) {
				return bc.Client.ListWorkflowFiles(bc.Context, owner, repo)
			})
			if err != nil {
				return err
			}

			if len(files) == 0 {
				fmt.Fprintf(cobraCmd.OutOrStdout(), "No workflow files in %s/%s\n", owner, repo)
				return nil
			}

			table := commands.NewTable(cobraCmd.OutOrStdout())
			fmt.Fprintln(table, "NAME\tPATH")
			for _, f := range files {
				fmt.Fprintf(table, "%s\t%s\n", f.Name, f.Path)
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

func newCopyCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:          "copy [owner/repo:path] [owner/repo]",
		Short:        "Copy a workflow file to another repository",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			srcOwner, srcRepo, srcPath, err := parseSourceArg(args[0])
			if err != nil {
				return err
			}
			dstOwner, dstRepo, err := commands.ParseRepoArg(args[1])
			if err != nil {
				return err
			}

			bc := &commands.BaseCommand{ConfigFile: configFile, LoadConfig: loadConfig}
			if err := bc.Init(); err != nil {
				return err
			}
			defer bc.Close()

			content, _, err := bc.Client.GetFileContent(bc.Context, srcOwner, srcRepo, srcPath)
			if err != nil {
				return err
			}

			dstPath := path.Join(".github/workflows", path.Base(srcPath))

			// The destination may already carry the file; an update
			// needs its current blob SHA.
			var sha string
			if _, existingSHA, err := bc.Client.GetFileContent(bc.Context, dstOwner, dstRepo, dstPath); err == nil {
				sha = existingSHA
			}

			message := fmt.Sprintf("Add workflow %s from %s/%s", path.Base(srcPath), srcOwner, srcRepo)
			if err := bc.Client.PutFileContent(bc.Context, dstOwner, dstRepo, dstPath, message, content, sha); err != nil {
				return err
			}

			fmt.Fprintf(cobraCmd.OutOrStdout(), "Copied %s to %s/%s\n", dstPath, dstOwner, dstRepo)
			return nil
		},
	}
}

// parseSourceArg splits "owner/repo:path" into its parts. A bare file
// name resolves under .github/workflows.
func parseSourceArg(arg string) (owner, repo, filePath string, err error) {
	repoPart, filePath, ok := strings.Cut(arg, ":")
	if !ok || filePath == "" {
		return "", "", "", fmt.Errorf("invalid source %q (expected owner/repo:path)", arg)
	}
	owner, repo, err = commands.ParseRepoArg(repoPart)
	if err != nil {
		return "", "", "", err
	}
	if !strings.Contains(filePath, "/") {
		filePath = path.Join(".github/workflows", filePath)
	}
	return owner, repo, filePath, nil
}
