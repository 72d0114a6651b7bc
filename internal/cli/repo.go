package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/guleriaakshit/open-lens/pkg/errors"
	"github.com/guleriaakshit/open-lens/pkg/github"
)

// repoCommand creates the single-repository detail command.
func (c *CLI) repoCommand() *cobra.Command {
	var (
		showReadme bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "repo <owner/repo>",
		Short: "Show repository details",
		Long: `Show a repository's language composition and label set.

With --readme the rendered README HTML is printed to stdout, suitable for
piping into a pager or an HTML renderer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			owner, repo, err := github.ParseRepoRef(args[0])
			if err != nil {
				return fmt.Errorf("%s", apperrors.UserMessage(err))
			}

			svc, cleanup, err := c.newService(ctx, noCache)
			if err != nil {
				return err
			}
			defer cleanup()

			if showReadme {
				html := svc.Readme(ctx, owner, repo)
				if html == "" {
					printInfo("No readme available")
					return nil
				}
				fmt.Println(html)
				return nil
			}

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching %s/%s...", owner, repo))
			spinner.Start()
			languages := svc.Languages(ctx, owner, repo)
			labels := svc.Labels(ctx, owner, repo)
			spinner.Stop()

			fmt.Println(StyleTitle.Render(owner + "/" + repo))
			printNewline()

			if len(languages) > 0 {
				printKeyValue("Languages", formatLanguages(languages))
			}
			if len(labels) > 0 {
				names := make([]string, 0, len(labels))
				for _, label := range labels {
					names = append(names, label.Name)
				}
				printKeyValue("Labels", strings.Join(names, ", "))
			}
			if len(languages) == 0 && len(labels) == 0 {
				printInfo("No details available")
			}

			printNewline()
			printNextStep("List open issues", fmt.Sprintf("openlens issues %s/%s", owner, repo))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showReadme, "readme", false, "print the rendered README HTML")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the local response cache")

	return cmd
}

// formatLanguages renders byte counts as percentages, largest first.
func formatLanguages(langs map[string]int64) string {
	var total int64
	for _, bytes := range langs {
		total += bytes
	}
	if total == 0 {
		return ""
	}

	names := make([]string, 0, len(langs))
	for name := range langs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return langs[names[i]] > langs[names[j]] })

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %.1f%%", name, float64(langs[name])/float64(total)*100))
	}
	return strings.Join(parts, ", ")
}
