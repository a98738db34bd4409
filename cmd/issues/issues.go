// Package issues implements the issue commands, including the expanded
// issue view that pulls the whole detail graph.
package issues

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/friuns/vibehub/internal/cache"
	"github.com/friuns/vibehub/internal/commands"
	"github.com/friuns/vibehub/internal/config"
	"github.com/friuns/vibehub/internal/github"
	"github.com/friuns/vibehub/internal/prefetch"
)

// NewIssuesCmd creates the issues command group.
func NewIssuesCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issues",
		Short: "List, create, comment on and inspect issues",
	}

	cmd.AddCommand(newListCmd(configFile, loadConfig))
	cmd.AddCommand(newCreateCmd(configFile, loadConfig))
	cmd.AddCommand(newCommentCmd(configFile, loadConfig))
	cmd.AddCommand(newShowCmd(configFile, loadConfig))

	return cmd
}

func newListCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	var cachedOnly bool

	cmd := &cobra.Command{
		Use:          "list [owner/repo]",
		Short:        "List open issues and pull requests",
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

			issues, fromCache, err := commands.FetchWithCache(bc.Cache, cache.IssuesKey(owner, repo), bc.Config.TTL(), cachedOnly, func() ([]github.Issue, error) {
				return bc.Client.ListIssues(bc.Context, owner, repo)
			})
			if err != nil {
				return err
			}

			table := commands.NewTable(cobraCmd.OutOrStdout())
			fmt.Fprintln(table, "NUMBER\tKIND\tUPDATED\tTITLE")
			for _, issue := range issues {
				kind := "issue"
				if issue.IsPullRequest {
					kind = "pr"
				}
				fmt.Fprintf(table, "#%d\t%s\t%s\t%s\n", issue.Number, kind, commands.FormatAge(issue.UpdatedAt), commands.Truncate(issue.Title, 70))
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
	var title, body string

	cmd := &cobra.Command{
		Use:          "create [owner/repo]",
		Short:        "Create an issue",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			owner, repo, err := commands.ParseRepoArg(args[0])
			if err != nil {
				return err
			}
			if title == "" {
				return fmt.Errorf("--title is required")
			}

			bc := &commands.BaseCommand{ConfigFile: configFile, LoadConfig: loadConfig}
			if err := bc.Init(); err != nil {
				return err
			}
			defer bc.Close()

			issue, err := bc.Client.CreateIssue(bc.Context, owner, repo, title, body)
			if err != nil {
				return err
			}

			fmt.Fprintf(cobraCmd.OutOrStdout(), "Created issue #%d: %s\n", issue.Number, issue.URL)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Issue title")
	cmd.Flags().StringVar(&body, "body", "", "Issue body")

	return cmd
}

func newCommentCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:          "comment [owner/repo] [number]",
		Short:        "Comment on an issue or pull request",
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
			if body == "" {
				return fmt.Errorf("--body is required")
			}

			bc := &commands.BaseCommand{ConfigFile: configFile, LoadConfig: loadConfig}
			if err := bc.Init(); err != nil {
				return err
			}
			defer bc.Close()

			comment, err := bc.Client.CreateIssueComment(bc.Context, owner, repo, number, body)
			if err != nil {
				return err
			}

			fmt.Fprintf(cobraCmd.OutOrStdout(), "Commented on #%d (comment %d)\n", number, comment.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Comment body")

	return cmd
}

func newShowCmd(configFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	var cachedOnly bool

	cmd := &cobra.Command{
		Use:   "show [owner/repo] [number]",
		Short: "Show an issue with its full detail graph",
		Long: `Show an issue with its comments, the pull requests referencing it,
their deployments and the workflow runs and artifacts for their head
commits. Served from the cached bundle when fresh, otherwise assembled
on demand and cached.`,
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

			bundle, err := loadBundle(bc, owner, repo, number, cachedOnly)
			if err != nil {
				return err
			}

			printBundle(cobraCmd, number, bundle)
			return nil
		},
	}

	cmd.Flags().BoolVar(&cachedOnly, "cached", false, "Serve the cached bundle without refreshing when it is fresh")

	return cmd
}

// loadBundle serves the cached expanded-issue bundle when allowed and
// fresh, and otherwise reassembles it. A failed reassembly falls back
// to the stale cached bundle when one exists.
func loadBundle(bc *commands.BaseCommand, owner, repo string, number int, cachedOnly bool) (*prefetch.Bundle, error) {
	key := cache.ExpandedIssueKey(owner, repo, number)

	cached, haveCached := cache.GetCached[prefetch.Bundle](bc.Cache, key)
	if cachedOnly && haveCached && bc.Cache.IsFresh(key, bc.Config.TTL()) {
		return &cached, nil
	}

	issues, _, err := commands.FetchWithCache(bc.Cache, cache.IssuesKey(owner, repo), bc.Config.TTL(), true, func() ([]github.Issue, error) {
		return bc.Client.ListIssues(bc.Context, owner, repo)
	})
	if err != nil {
		if haveCached {
			return &cached, nil
		}
		return nil, err
	}

	var issue *github.Issue
	for i := range issues {
		if issues[i].Number == number {
			issue = &issues[i]
			break
		}
	}
	if issue == nil {
		return nil, fmt.Errorf("issue #%d not found in %s/%s", number, owner, repo)
	}

	runs, _, err := commands.FetchWithCache(bc.Cache, cache.WorkflowRunsKey(owner, repo), bc.Config.TTL(), true, func() ([]github.WorkflowRun, error) {
		return bc.Client.ListWorkflowRuns(bc.Context, owner, repo)
	})
	if err != nil {
		runs = nil
	}

	expander := prefetch.NewExpander(bc.Client, bc.Cache)
	bundle, err := expander.ExpandIssue(bc.Context, owner, repo, *issue, issues, runs)
	if err != nil {
		if haveCached {
			return &cached, nil
		}
		return nil, err
	}
	return bundle, nil
}

func printBundle(cobraCmd *cobra.Command, number int, bundle *prefetch.Bundle) {
	out := cobraCmd.OutOrStdout()

	fmt.Fprintf(out, "Issue #%d\n\n", number)

	fmt.Fprintf(out, "Comments (%d):\n", len(bundle.Comments))
	for _, c := range bundle.Comments {
		fmt.Fprintf(out, "  %s: %s\n", c.User, commands.Truncate(c.Body, 80))
	}

	fmt.Fprintf(out, "\nRelated pull requests (%d):\n", len(bundle.PRDetails))
	for prNumber, pr := range bundle.PRDetails {
		state := pr.State
		if pr.Merged {
			state = "merged"
		}
		fmt.Fprintf(out, "  #%d [%s] %s (%d comments)\n", prNumber, state, commands.Truncate(pr.Title, 60), len(bundle.PRComments[prNumber]))
		for _, d := range bundle.DeploymentsByPR[prNumber] {
			status := "no status"
			if d.Status != nil {
				status = d.Status.State
			}
			fmt.Fprintf(out, "    deploy %s: %s\n", d.Deployment.Environment, status)
		}
	}

	fmt.Fprintf(out, "\nWorkflow runs (%d):\n", len(bundle.WorkflowRuns))
	for _, run := range bundle.WorkflowRuns {
		fmt.Fprintf(out, "  %s [%s/%s] %d artifact(s)\n", run.Name, run.Status, run.Conclusion, len(bundle.Artifacts[run.ID]))
	}
}
