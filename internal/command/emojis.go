package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewEmojisCmd creates the emojis command, showing the local quick-pick
// ranking.
func NewEmojisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "emojis",
		Short: "Show frequently used emojis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer app.close()

			records, err := app.store.FrequentEmojis()
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No emoji usage recorded yet")
				return nil
			}
			for _, record := range records {
				kind := "standard"
				if record.IsCustom {
					kind = "custom"
				}
				fmt.Fprintf(cmd.OutOrStdout(), ":%s:  %d uses  (%s)\n", record.Content, record.Count, kind)
			}
			return nil
		},
	}
}
