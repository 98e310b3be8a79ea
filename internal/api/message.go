package api

import (
	"context"
	"net/http"
)

// SendMessage posts a new message, optionally into a thread.
func (c *Client) SendMessage(ctx context.Context, roomID, text, tmid string, sendToChannel bool) error {
	message := map[string]any{
		"rid": roomID,
		"msg": text,
	}
	if tmid != "" {
		message["tmid"] = tmid
		if sendToChannel {
			message["tshow"] = true
		}
	}
	req := map[string]any{"message": message}
	return c.doJSON(ctx, http.MethodPost, "/v1/chat.sendMessage", nil, req, nil)
}

// UpdateMessage replaces the text of an existing message.
func (c *Client) UpdateMessage(ctx context.Context, roomID, messageID, text string) error {
	req := struct {
		RoomID    string `json:"roomId"`
		MessageID string `json:"msgId"`
		Text      string `json:"text"`
	}{RoomID: roomID, MessageID: messageID, Text: text}
	return c.doJSON(ctx, http.MethodPost, "/v1/chat.update", nil, req, nil)
}
