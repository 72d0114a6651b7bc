package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/guleriaakshit/open-lens/pkg/errors"
	"github.com/guleriaakshit/open-lens/pkg/github"
)

// validateTimeout bounds the credential-validation round trip.
const validateTimeout = 30 * time.Second

// authCommand creates the auth command with subcommands.
func (c *CLI) authCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored API credential",
		Long: `Store, verify, or remove the GitHub API token.

Authenticated requests get a much higher rate limit. The token is validated
against the identity endpoint before being stored in ~/.config/openlens/`,
	}

	cmd.AddCommand(c.authLoginCommand())
	cmd.AddCommand(c.authLogoutCommand())
	cmd.AddCommand(c.authWhoamiCommand())

	return cmd
}

// authLoginCommand creates the login subcommand.
func (c *CLI) authLoginCommand() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Validate and store an API token",
		Long: `Validate a personal access token and store it for future commands.

Pass the token with --token or paste it when prompted. The token is stored
only after the identity endpoint accepts it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if token == "" {
				var err error
				if token, err = promptToken(); err != nil {
					return err
				}
			}

			user, err := c.validateToken(ctx, token)
			if err != nil {
				printError("Token rejected")
				return fmt.Errorf("%s", apperrors.UserMessage(err))
			}

			creds, err := c.credentials()
			if err != nil {
				return err
			}
			if err := creds.Set(token); err != nil {
				return fmt.Errorf("store token: %w", err)
			}

			printSuccess("Logged in as @%s", user.Login)
			return nil
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "personal access token")

	return cmd
}

// authLogoutCommand creates the logout subcommand.
func (c *CLI) authLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := c.credentials()
			if err != nil {
				return err
			}
			if err := creds.Set(""); err != nil {
				return fmt.Errorf("clear token: %w", err)
			}
			printSuccess("Logged out")
			return nil
		},
	}
}

// authWhoamiCommand creates the whoami subcommand.
func (c *CLI) authWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity behind the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := c.credentials()
			if err != nil {
				return err
			}
			token := creds.Get()
			if token == "" {
				printInfo("Not logged in")
				printDetail("Run 'openlens auth login' to store a token")
				return nil
			}

			user, err := c.validateToken(cmd.Context(), token)
			if err != nil {
				printError("Stored token is no longer valid")
				printDetail("Run 'openlens auth login' to replace it")
				return fmt.Errorf("%s", apperrors.UserMessage(err))
			}

			printSuccess("Authenticated")
			printKeyValue("Username", "@"+user.Login)
			if user.Name != "" {
				printKeyValue("Name", user.Name)
			}
			return nil
		},
	}
}

// validateToken runs the live identity round trip with a spinner.
func (c *CLI) validateToken(ctx context.Context, token string) (*github.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	spinner := newSpinnerWithContext(ctx, "Validating token...")
	spinner.Start()
	user, err := github.Validate(ctx, token, c.cfg.APIBaseURL)
	spinner.Stop()
	return user, err
}

func promptToken() (string, error) {
	fmt.Print(StyleDim.Render("Paste token: "))
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(line)
	if token == "" {
		return "", fmt.Errorf("empty token")
	}
	return token, nil
}
