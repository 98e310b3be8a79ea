package composer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/quillchat/quill/internal/api"
	"github.com/quillchat/quill/internal/types"
)

// SubmissionKind says what Submit decided to do with the text.
type SubmissionKind int

const (
	// SubmissionNone means the submit was a no-op (empty message).
	SubmissionNone SubmissionKind = iota
	// SubmissionCommand means a slash command was executed remotely.
	SubmissionCommand
	// SubmissionEdit means the text should replace an existing message.
	SubmissionEdit
	// SubmissionMessage means the text should be posted as a message.
	SubmissionMessage
)

// OutgoingMessage is the staged message handed to the send layer. It is never
// persisted locally; the server echo populates the mirror.
type OutgoingMessage struct {
	ID            string // message being edited, for SubmissionEdit
	RID           string
	Text          string
	TMID          string
	SendToChannel bool
}

// Submission is the outcome of a Submit call.
type Submission struct {
	Kind    SubmissionKind
	Command *types.SlashCommand
	Message *OutgoingMessage
}

// Submit finalizes the draft. A leading slash naming a locally mirrored
// command executes remotely; otherwise the text is staged as an edit, a
// thread reply, or a plain message. An empty (post-trim) draft is a no-op
// that leaves the composer untouched.
func (c *Composer) Submit(ctx context.Context) (Submission, error) {
	c.mu.Lock()
	text := c.text
	if strings.TrimSpace(text) == "" {
		c.mu.Unlock()
		return Submission{Kind: SubmissionNone}, nil
	}

	editingID := c.editingID
	replyingID := c.replyingID
	sendToChannel := c.sendToChannel
	tmid := c.targetThreadLocked()
	c.editingID = ""
	c.replyingID = ""
	c.stopTrackingLocked()
	c.clearPreviewLocked()
	c.clearInputLocked()
	c.mu.Unlock()

	c.stopDebouncers()
	c.setTyping(false)
	c.persistDraft("")
	c.update()

	if strings.HasPrefix(text, "/") {
		name := strings.TrimPrefix(strings.SplitN(text, " ", 2)[0], "/")
		cmd, err := c.store.GetSlashCommand(name)
		if err != nil {
			c.log.Warn("slash command lookup", zap.Error(err))
		}
		if cmd != nil {
			params := strings.TrimSpace(strings.TrimPrefix(text, "/"+name))
			triggerID := api.GenerateTriggerID(cmd.AppID)
			if err := c.remote.RunCommand(ctx, cmd.ID, c.opts.RoomID, params, triggerID, tmid); err != nil {
				c.log.Warn("run slash command", zap.String("command", cmd.ID), zap.Error(err))
			}
			return Submission{Kind: SubmissionCommand, Command: cmd}, nil
		}
	}

	if editingID != "" {
		return Submission{
			Kind:    SubmissionEdit,
			Message: &OutgoingMessage{ID: editingID, RID: c.opts.RoomID, Text: text},
		}, nil
	}

	message := &OutgoingMessage{
		RID:  c.opts.RoomID,
		Text: text,
	}
	if c.opts.ThreadID != "" {
		message.TMID = c.opts.ThreadID
	} else if replyingID != "" {
		message.TMID = replyingID
		message.SendToChannel = sendToChannel
	}
	return Submission{Kind: SubmissionMessage, Message: message}, nil
}
