package command

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewSyncCmd creates the sync command, which refreshes the local mirror of
// server-owned reference data.
func NewSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the local mirror of slash commands and custom emojis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer app.close()

			client, err := app.connect()
			if err != nil {
				return writeCommandError(cmd, err)
			}

			ctx := cmd.Context()

			commands, err := client.ListCommands(ctx)
			if err != nil {
				return writeCommandError(cmd, fmt.Errorf("fetch commands: %w", err))
			}
			if err := app.store.ReplaceSlashCommands(commands); err != nil {
				return writeCommandError(cmd, err)
			}
			app.log.Info("commands mirrored", zap.Int("count", len(commands)))

			emojis, err := client.ListCustomEmojis(ctx)
			if err != nil {
				return writeCommandError(cmd, fmt.Errorf("fetch custom emojis: %w", err))
			}
			for _, emoji := range emojis {
				if err := app.store.UpsertCustomEmoji(emoji); err != nil {
					return writeCommandError(cmd, err)
				}
			}
			app.log.Info("custom emojis mirrored", zap.Int("count", len(emojis)))

			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d commands, %d custom emojis\n", len(commands), len(emojis))
			return nil
		},
	}
}
