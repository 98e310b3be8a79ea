package command

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewThreadsCmd creates the threads command: refresh a room's thread mirror
// from the server and list it, most recent reply first.
func NewThreadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threads <room-id>",
		Short: "List a room's threads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer app.close()

			roomID := args[0]
			local, _ := cmd.Flags().GetBool("local")
			if !local {
				client, err := app.connect()
				if err != nil {
					return writeCommandError(cmd, err)
				}
				fetched, err := client.ListThreads(cmd.Context(), roomID)
				if err != nil {
					return writeCommandError(cmd, fmt.Errorf("fetch threads: %w", err))
				}
				for _, thread := range fetched {
					if err := app.store.UpsertThread(thread); err != nil {
						return writeCommandError(cmd, err)
					}
				}
			}

			threads, err := app.store.GetThreadsByRoom(roomID)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if len(threads) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No threads mirrored for this room")
				return nil
			}
			for _, thread := range threads {
				line := fmt.Sprintf("%s  %d replies", thread.ID, thread.ReplyCount)
				if thread.LastReplyTS != nil {
					line += "  " + time.UnixMilli(*thread.LastReplyTS).Format("2006-01-02 15:04")
				}
				if thread.DraftMessage != nil && *thread.DraftMessage != "" {
					line += "  [draft]"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().Bool("local", false, "list the mirror without refreshing from the server")
	return cmd
}
