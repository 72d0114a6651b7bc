package cli

import (
	"github.com/spf13/cobra"
)

// historyCommand creates the search-history command.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent search queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			states, err := c.stateStore()
			if err != nil {
				return err
			}

			history := states.History()
			if len(history) == 0 {
				printInfo("No search history")
				return nil
			}
			for _, q := range history {
				printDetail("%s", q)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the search history",
		RunE: func(cmd *cobra.Command, args []string) error {
			states, err := c.stateStore()
			if err != nil {
				return err
			}
			states.ClearHistory()
			printSuccess("History cleared")
			return nil
		},
	})

	return cmd
}
