package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/guleriaakshit/open-lens/pkg/errors"
	"github.com/guleriaakshit/open-lens/pkg/fetch"
	"github.com/guleriaakshit/open-lens/pkg/github"
	"github.com/guleriaakshit/open-lens/pkg/query"
)

// trendingCommand creates the trending feed command.
func (c *CLI) trendingCommand() *cobra.Command {
	var (
		language string
		watch    bool
		interval time.Duration
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show today's trending repositories",
		Long: `Show the daily trending repositories, optionally scoped to one language.

With --watch the listing refreshes on an interval. Overlapping refreshes are
fenced: only the most recently started refresh is rendered, so a slow stale
response never overwrites a newer one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			filters := query.DefaultFilters()
			if language != "" {
				filters.Languages = []string{language}
			}

			svc, cleanup, err := c.newService(ctx, noCache)
			if err != nil {
				return err
			}
			defer cleanup()

			if !watch {
				return c.showTrending(ctx, svc, filters)
			}
			return c.watchTrending(ctx, svc, filters, interval)
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "scope the feed to one language")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "refresh the listing on an interval")
	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "refresh interval for --watch")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the local response cache")

	return cmd
}

func (c *CLI) showTrending(ctx context.Context, svc *fetch.Service, filters query.FilterState) error {
	spinner := newSpinnerWithContext(ctx, "Fetching trending repositories...")
	spinner.Start()

	result, err := svc.SearchRepositories(ctx, filters, 1, "")
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return fmt.Errorf("%s", apperrors.UserMessage(err))
	}
	spinner.Stop()

	if states, err := c.stateStore(); err == nil {
		states.SaveSnapshot(result.Items, filters)
	}

	if len(result.Items) == 0 {
		printInfo("Nothing trending right now")
		return nil
	}
	printRepoList(result.Items)
	return nil
}

// watchTrending refreshes the listing until the context is cancelled. Each
// refresh takes a fence ticket; a response is rendered only while its ticket
// is still the latest, so an interval shorter than upstream latency cannot
// interleave stale listings.
func (c *CLI) watchTrending(ctx context.Context, svc *fetch.Service, filters query.FilterState, interval time.Duration) error {
	var fence fetch.Fence

	render := func(repos []github.Repository, at time.Time) {
		fmt.Print("\033[H\033[2J") // clear screen
		fmt.Println(StyleTitle.Render("Trending repositories") + " " + StyleDim.Render(at.Format("15:04:05")))
		printNewline()
		printRepoList(repos)
	}

	// Paint the last saved page immediately so the first screen is not
	// blank while the first refresh is in flight.
	if snap, ok := c.savedSnapshot(); ok && len(snap.Repos) > 0 {
		render(snap.Repos, snap.SavedAt)
	}

	refresh := func() {
		ticket := fence.Issue()
		go func() {
			result, err := svc.SearchRepositories(ctx, filters, 1, "")
			if !fence.Latest(ticket) {
				return
			}
			if err != nil {
				printWarning("refresh failed: %s", apperrors.UserMessage(err))
				return
			}
			render(result.Items, time.Now())
		}()
	}

	refresh()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			refresh()
		}
	}
}
