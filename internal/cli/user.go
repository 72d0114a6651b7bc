package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/guleriaakshit/open-lens/pkg/errors"
	"github.com/guleriaakshit/open-lens/pkg/github"
)

// userCommand creates the user profile command.
func (c *CLI) userCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "user <login>",
		Short: "Show a user's profile and top repositories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			login := args[0]

			if err := github.ValidateOwner(login); err != nil {
				return fmt.Errorf("%s", apperrors.UserMessage(err))
			}

			svc, cleanup, err := c.newService(ctx, noCache)
			if err != nil {
				return err
			}
			defer cleanup()

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching @%s...", login))
			spinner.Start()
			profile := svc.UserProfile(ctx, login)
			topRepos := svc.UserTopRepos(ctx, login)
			spinner.Stop()

			fmt.Println(StyleTitle.Render("@" + profile.Login))
			if profile.Name != "" && profile.Name != profile.Login {
				printKeyValue("Name", profile.Name)
			}
			if profile.Company != "" {
				printKeyValue("Company", profile.Company)
			}
			if profile.Location != "" {
				printKeyValue("Location", profile.Location)
			}
			if profile.Bio != "" {
				printKeyValue("Bio", profile.Bio)
			}
			printKeyValue("Followers", formatCount(profile.Followers))
			printKeyValue("Repos", formatCount(profile.PublicRepos))
			if !profile.CreatedAt.IsZero() {
				printKeyValue("Joined", profile.CreatedAt.Format("Jan 2006"))
			}

			if len(topRepos) > 0 {
				printNewline()
				fmt.Println(StyleHighlight.Render("Top repositories"))
				printRepoList(topRepos)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the local response cache")

	return cmd
}
