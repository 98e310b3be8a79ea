package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewDraftCmd creates the draft command for inspecting and editing persisted
// drafts outside the TUI.
func NewDraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft <room-id> [text...]",
		Short: "Show, set, or clear a room draft",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer app.close()

			roomID := args[0]
			threadID, _ := cmd.Flags().GetString("thread")
			clear, _ := cmd.Flags().GetBool("clear")

			if clear {
				if threadID != "" {
					err = app.store.SetThreadDraft(threadID, roomID, "")
				} else {
					err = app.store.SetRoomDraft(roomID, "")
				}
				if err != nil {
					return writeCommandError(cmd, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Draft cleared")
				return nil
			}

			if len(args) > 1 {
				text := strings.Join(args[1:], " ")
				if threadID != "" {
					err = app.store.SetThreadDraft(threadID, roomID, text)
				} else {
					err = app.store.SetRoomDraft(roomID, text)
				}
				if err != nil {
					return writeCommandError(cmd, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Draft saved")
				return nil
			}

			var draft *string
			if threadID != "" {
				thread, err := app.store.GetThread(threadID)
				if err != nil {
					return writeCommandError(cmd, err)
				}
				if thread != nil {
					draft = thread.DraftMessage
				}
			} else {
				sub, err := app.store.GetSubscription(roomID)
				if err != nil {
					return writeCommandError(cmd, err)
				}
				if sub != nil {
					draft = sub.DraftMessage
				}
			}
			if draft == nil || *draft == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No draft")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), *draft)
			return nil
		},
	}
	cmd.Flags().String("thread", "", "operate on a thread draft (root message id)")
	cmd.Flags().Bool("clear", false, "clear the draft")
	return cmd
}
