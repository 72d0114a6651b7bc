package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	apperrors "github.com/guleriaakshit/open-lens/pkg/errors"
	"github.com/guleriaakshit/open-lens/pkg/query"
)

// searchCommand creates the repository search command.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		userScope string
		page      int
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search repositories",
		Long: `Search GitHub repositories with optional narrowing filters.

Languages are keyword matches: each selected language must appear in the
repository's metadata. Filters persist between runs; a flag left unset keeps
the previous session's selection. Results are cached locally; pass --no-cache
to force a fresh fetch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			states, statesErr := c.stateStore()

			// Seed from the persisted selection so flags left unset keep
			// the previous session's narrowing.
			seeded := query.DefaultFilters()
			if statesErr == nil {
				seeded = states.LoadFilters()
			}
			seeded.Query = ""
			if len(args) == 1 {
				seeded.Query = args[0]
			}

			filters, err := mergeSearchFlags(cmd.Flags(), seeded)
			if err != nil {
				return err
			}

			svc, cleanup, err := c.newService(ctx, noCache)
			if err != nil {
				return err
			}
			defer cleanup()

			prog := newProgress(c.Logger)
			spinner := newSpinnerWithContext(ctx, "Searching repositories...")
			spinner.Start()

			result, err := svc.SearchRepositories(ctx, filters, page, userScope)
			if err != nil {
				spinner.StopWithError("Search failed")
				return fmt.Errorf("%s", apperrors.UserMessage(err))
			}
			spinner.Stop()
			prog.done(fmt.Sprintf("Fetched %d repositories", len(result.Items)))

			if statesErr == nil {
				states.SaveSnapshot(result.Items, filters)
				states.SaveFilters(filters)
				states.AddHistory(filters.Query)
			}

			if result.Warning != "" {
				printWarning("%s", result.Warning)
			}
			if len(result.Items) == 0 {
				printInfo("No repositories matched")
				return nil
			}

			printRepoList(result.Items)
			printNewline()
			if result.TotalCount > len(result.Items) {
				printDetail("showing %d of %s matches (page %d)", len(result.Items), formatCount(result.TotalCount), page)
			}
			printNextStep("Browse a repository's issues", "openlens issues <owner/repo>")
			return nil
		},
	}

	cmd.Flags().StringSliceP("language", "l", nil, "language keyword filter (repeatable)")
	cmd.Flags().String("license", "", "license filter (e.g. mit, apache-2.0)")
	cmd.Flags().StringP("sort", "s", string(query.SortStars), "sort mode: trending, stars, forks, updated")
	cmd.Flags().String("order", string(query.OrderDesc), "sort direction: desc, asc")
	cmd.Flags().StringVarP(&userScope, "user", "u", "", "scope results to one user or organization")
	cmd.Flags().Int("min-stars", 0, "minimum star count")
	cmd.Flags().Int("max-stars", 0, "maximum star count (0 = unbounded)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "result page (1-based)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the local response cache")

	return cmd
}

// mergeSearchFlags layers explicitly set flags over the seeded filter state.
// A flag left at its default keeps the seeded value, so the persisted
// selection survives until the user overrides it.
func mergeSearchFlags(flags *pflag.FlagSet, seeded query.FilterState) (query.FilterState, error) {
	f := seeded

	if flags.Changed("language") {
		f.Languages, _ = flags.GetStringSlice("language")
	}
	if flags.Changed("license") {
		if v, _ := flags.GetString("license"); v != "" {
			f.License = v
		} else {
			f.License = query.LicenseAll
		}
	}
	if flags.Changed("min-stars") {
		f.MinStars, _ = flags.GetInt("min-stars")
	}
	if flags.Changed("max-stars") {
		if n, _ := flags.GetInt("max-stars"); n > 0 {
			f.MaxStars = n
		} else {
			f.MaxStars = query.StarsUpperBound
		}
	}

	if flags.Changed("sort") {
		raw, _ := flags.GetString("sort")
		sort, err := query.ParseSort(raw)
		if err != nil {
			return query.FilterState{}, err
		}
		f.Sort = sort
	}
	if flags.Changed("order") {
		raw, _ := flags.GetString("order")
		order, err := query.ParseOrder(raw)
		if err != nil {
			return query.FilterState{}, err
		}
		f.Order = order
	}

	return f, nil
}
