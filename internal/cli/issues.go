package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/guleriaakshit/open-lens/pkg/errors"
	"github.com/guleriaakshit/open-lens/pkg/github"
	"github.com/guleriaakshit/open-lens/pkg/query"
)

// issuesCommand creates the issue listing command.
func (c *CLI) issuesCommand() *cobra.Command {
	var (
		sortMode string
		order    string
		labels   []string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "issues <owner/repo>",
		Short: "List a repository's open issues",
		Long: `List open issues for a repository. Pull requests are excluded.

Selected labels narrow the listing with OR semantics: an issue matches when
it carries any of them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			owner, repo, err := github.ParseRepoRef(args[0])
			if err != nil {
				return fmt.Errorf("%s", apperrors.UserMessage(err))
			}

			filters := query.IssueFilters{Labels: labels}
			if filters.Sort, err = query.ParseIssueSort(sortMode); err != nil {
				return err
			}
			if filters.Order, err = query.ParseOrder(order); err != nil {
				return err
			}

			svc, cleanup, err := c.newService(ctx, noCache)
			if err != nil {
				return err
			}
			defer cleanup()

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching issues for %s/%s...", owner, repo))
			spinner.Start()

			issues, err := svc.RepoIssues(ctx, owner, repo, filters)
			if err != nil {
				spinner.StopWithError("Fetch failed")
				if apperrors.Is(err, apperrors.ErrCodeFeatureDisabled) {
					printDetail("This repository has its issue tracker disabled")
					return nil
				}
				return fmt.Errorf("%s", apperrors.UserMessage(err))
			}
			spinner.Stop()

			if len(issues) == 0 {
				printInfo("No open issues")
				return nil
			}
			printIssueList(issues)
			printNewline()
			printDetail("%d open issues", len(issues))
			return nil
		},
	}

	cmd.Flags().StringVarP(&sortMode, "sort", "s", string(query.IssueSortCreated), "sort key: created, updated, comments")
	cmd.Flags().StringVar(&order, "order", string(query.OrderDesc), "sort direction: desc, asc")
	cmd.Flags().StringSliceVarP(&labels, "label", "L", nil, "label filter (repeatable, OR semantics)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the local response cache")

	return cmd
}
