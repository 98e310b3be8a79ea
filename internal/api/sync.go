package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/quillchat/quill/internal/types"
)

// syncPageSize is the page size used when walking list endpoints.
const syncPageSize = 100

type wireCommand struct {
	Command         string  `json:"command"`
	Params          string  `json:"params"`
	Description     string  `json:"description"`
	ClientOnly      bool    `json:"clientOnly"`
	ProvidesPreview bool    `json:"providesPreview"`
	AppID           *string `json:"appId"`
}

// ListCommands walks the server's slash-command registry page by page and
// returns the full list for mirroring.
func (c *Client) ListCommands(ctx context.Context) ([]types.SlashCommand, error) {
	var commands []types.SlashCommand
	offset := 0
	for {
		query := url.Values{}
		query.Set("offset", strconv.Itoa(offset))
		query.Set("count", strconv.Itoa(syncPageSize))
		var resp struct {
			Commands []wireCommand `json:"commands"`
			Total    int           `json:"total"`
		}
		if err := c.doJSON(ctx, http.MethodGet, "/v1/commands.list", query, nil, &resp); err != nil {
			return nil, err
		}
		for _, cmd := range resp.Commands {
			commands = append(commands, types.SlashCommand{
				ID:              cmd.Command,
				Params:          cmd.Params,
				Description:     cmd.Description,
				ClientOnly:      cmd.ClientOnly,
				ProvidesPreview: cmd.ProvidesPreview,
				AppID:           cmd.AppID,
			})
		}
		offset += len(resp.Commands)
		if len(resp.Commands) == 0 || offset >= resp.Total {
			return commands, nil
		}
	}
}

type wireThread struct {
	ID         string `json:"_id"`
	RID        string `json:"rid"`
	ReplyCount int64  `json:"tcount"`
	LastReply  string `json:"tlm"` // RFC 3339
}

// ListThreads walks a room's thread list page by page and returns the full
// list for mirroring. Threads without replies yet have no last-reply
// timestamp.
func (c *Client) ListThreads(ctx context.Context, roomID string) ([]types.Thread, error) {
	var threads []types.Thread
	offset := 0
	for {
		query := url.Values{}
		query.Set("rid", roomID)
		query.Set("offset", strconv.Itoa(offset))
		query.Set("count", strconv.Itoa(syncPageSize))
		var resp struct {
			Threads []wireThread `json:"threads"`
			Total   int          `json:"total"`
		}
		if err := c.doJSON(ctx, http.MethodGet, "/v1/chat.getThreadsList", query, nil, &resp); err != nil {
			return nil, err
		}
		for _, thread := range resp.Threads {
			mirrored := types.Thread{
				ID:         thread.ID,
				RID:        thread.RID,
				ReplyCount: thread.ReplyCount,
			}
			if thread.LastReply != "" {
				if ts, err := time.Parse(time.RFC3339, thread.LastReply); err == nil {
					ms := ts.UnixMilli()
					mirrored.LastReplyTS = &ms
				}
			}
			threads = append(threads, mirrored)
		}
		offset += len(resp.Threads)
		if len(resp.Threads) == 0 || offset >= resp.Total {
			return threads, nil
		}
	}
}

// ListCustomEmojis fetches the server's custom emoji set for mirroring.
func (c *Client) ListCustomEmojis(ctx context.Context) ([]types.CustomEmoji, error) {
	var resp struct {
		Emojis struct {
			Update []struct {
				Name      string   `json:"name"`
				Aliases   []string `json:"aliases"`
				Extension string   `json:"extension"`
			} `json:"update"`
		} `json:"emojis"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/emoji-custom.list", nil, nil, &resp); err != nil {
		return nil, err
	}
	emojis := make([]types.CustomEmoji, 0, len(resp.Emojis.Update))
	for _, emoji := range resp.Emojis.Update {
		emojis = append(emojis, types.CustomEmoji{
			Name:      emoji.Name,
			Aliases:   emoji.Aliases,
			Extension: emoji.Extension,
		})
	}
	return emojis, nil
}
