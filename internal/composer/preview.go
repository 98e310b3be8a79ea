package composer

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/quillchat/quill/internal/api"
	"github.com/quillchat/quill/internal/types"
)

var commandWithParamsRe = regexp.MustCompile(`(?i)^/([a-z0-9._-]+) (.+)`)

// splitCommandWithParams matches "/name params" against the whole message.
func splitCommandWithParams(text string) (name, params string, ok bool) {
	match := commandWithParamsRe.FindStringSubmatch(text)
	if match == nil {
		return "", "", false
	}
	return match[1], match[2], true
}

// negotiatePreview fetches preview items for a preview-capable command. An
// empty panel with the flag up means "no results", which is distinct from the
// panel being absent for non-preview commands.
func (c *Composer) negotiatePreview(cmd types.SlashCommand, name, params, requestText string) {
	preview, err := c.remote.CommandPreview(c.ctx, name, c.opts.RoomID, params)
	if err != nil {
		c.log.Debug("command preview", zap.String("command", name), zap.Error(err))
	}

	c.mu.Lock()
	defer func() {
		c.mu.Unlock()
		c.update()
	}()
	// The preview is only valid for the text it was requested against.
	if c.text != requestText {
		return
	}
	c.stopTrackingLocked()
	c.showPreview = true
	if err != nil || !preview.Success {
		c.previewItems = nil
		c.previewCommand = nil
		return
	}
	c.previewItems = preview.Items
	c.previewCommand = &cmd
}

// SelectPreviewItem executes the previewed command with the chosen item and
// clears the composer.
func (c *Composer) SelectPreviewItem(ctx context.Context, item types.PreviewItem) error {
	c.mu.Lock()
	text := c.text
	cmd := c.previewCommand
	c.clearPreviewLocked()
	c.stopTrackingLocked()
	c.clearInputLocked()
	tmid := c.targetThreadLocked()
	c.mu.Unlock()
	c.update()

	c.setTyping(false)
	c.persistDraft("")

	name, params, ok := splitCommandWithParams(text)
	if !ok {
		name = strings.TrimPrefix(strings.SplitN(text, " ", 2)[0], "/")
		params = "params"
	}

	var appID *string
	if cmd != nil {
		appID = cmd.AppID
	}
	triggerID := api.GenerateTriggerID(appID)
	if err := c.remote.ExecuteCommandPreview(ctx, name, params, c.opts.RoomID, item, triggerID, tmid); err != nil {
		c.log.Warn("execute command preview", zap.String("command", name), zap.Error(err))
		return err
	}
	return nil
}

// targetThreadLocked resolves the thread a command executes against: the
// composer's thread wins over the message being replied to.
func (c *Composer) targetThreadLocked() string {
	if c.opts.ThreadID != "" {
		return c.opts.ThreadID
	}
	return c.replyingID
}
