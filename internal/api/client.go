package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quillchat/quill/internal/types"
)

// APIError represents a non-2xx response from the chat service.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" && e.Message != "" {
		return fmt.Sprintf("chat api error: %s (%d): %s", e.Code, e.Status, e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("chat api error: %s (%d)", e.Code, e.Status)
	}
	if e.Message != "" {
		return fmt.Sprintf("chat api error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("chat api error (%d)", e.Status)
}

type apiErrorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client talks to the chat service REST API.
type Client struct {
	baseURL    string
	token      string
	userID     string
	httpClient *http.Client
}

// NewClient constructs a chat service client.
func NewClient(baseURL, userID, token string) (*Client, error) {
	normalized, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: normalized,
		token:   token,
		userID:  userID,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}, nil
}

// NormalizeBaseURL normalizes a server base URL and ensures it has a scheme.
func NormalizeBaseURL(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("server url cannot be empty")
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return "", fmt.Errorf("invalid server url: %w", err)
	}
	if parsed.Scheme == "" {
		return "", fmt.Errorf("server url must include scheme (https://)")
	}
	return strings.TrimRight(value, "/"), nil
}

// Search runs the server-side fuzzy search over users and/or rooms.
func (c *Client) Search(ctx context.Context, text string, filterRooms, filterUsers bool) ([]SearchResult, error) {
	req := struct {
		Text        string `json:"text"`
		FilterRooms bool   `json:"filterRooms"`
		FilterUsers bool   `json:"filterUsers"`
	}{Text: text, FilterRooms: filterRooms, FilterUsers: filterUsers}
	var resp struct {
		Results []SearchResult `json:"results"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/spotlight.search", nil, req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// CannedResponses fetches livechat canned responses matching a free-text
// filter.
func (c *Client) CannedResponses(ctx context.Context, text string) ([]types.CannedResponse, error) {
	query := url.Values{}
	if text != "" {
		query.Set("text", text)
	}
	var resp struct {
		CannedResponses []types.CannedResponse `json:"cannedResponses"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/canned-responses", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.CannedResponses, nil
}

// CommandPreview asks the server to render preview items for a slash command.
func (c *Client) CommandPreview(ctx context.Context, name, roomID, params string) (types.CommandPreview, error) {
	query := url.Values{}
	query.Set("command", name)
	query.Set("roomId", roomID)
	query.Set("params", params)
	var resp struct {
		Success bool `json:"success"`
		Preview struct {
			Items []types.PreviewItem `json:"items"`
		} `json:"preview"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/commands.preview", query, nil, &resp); err != nil {
		return types.CommandPreview{}, err
	}
	return types.CommandPreview{Success: resp.Success, Items: resp.Preview.Items}, nil
}

// ExecuteCommandPreview executes a slash command with a chosen preview item.
func (c *Client) ExecuteCommandPreview(ctx context.Context, name, params, roomID string, item types.PreviewItem, triggerID, tmid string) error {
	req := struct {
		Command     string            `json:"command"`
		Params      string            `json:"params"`
		RoomID      string            `json:"roomId"`
		PreviewItem types.PreviewItem `json:"previewItem"`
		TriggerID   string            `json:"triggerId"`
		TMID        string            `json:"tmid,omitempty"`
	}{Command: name, Params: params, RoomID: roomID, PreviewItem: item, TriggerID: triggerID, TMID: tmid}
	return c.doJSON(ctx, http.MethodPost, "/v1/commands.preview", nil, req, nil)
}

// RunCommand executes a slash command without a preview.
func (c *Client) RunCommand(ctx context.Context, name, roomID, params, triggerID, tmid string) error {
	req := struct {
		Command   string `json:"command"`
		RoomID    string `json:"roomId"`
		Params    string `json:"params"`
		TriggerID string `json:"triggerId"`
		TMID      string `json:"tmid,omitempty"`
	}{Command: name, RoomID: roomID, Params: params, TriggerID: triggerID, TMID: tmid}
	return c.doJSON(ctx, http.MethodPost, "/v1/commands.run", nil, req, nil)
}

// HasPermission checks a list of permission ids against a room, returning one
// flag per id in order.
func (c *Client) HasPermission(ctx context.Context, permissionIDs []string, roomID string) ([]bool, error) {
	req := struct {
		Permissions []string `json:"permissions"`
		RoomID      string   `json:"roomId"`
	}{Permissions: permissionIDs, RoomID: roomID}
	var resp struct {
		Permissions []bool `json:"permissions"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/permissions.check", nil, req, &resp); err != nil {
		return nil, err
	}
	return resp.Permissions, nil
}

// SaveNotificationSettings persists per-room notification preferences. A
// response without success set is surfaced as an error so callers can roll
// back optimistic writes.
func (c *Client) SaveNotificationSettings(ctx context.Context, roomID string, settings NotificationSettings) error {
	req := struct {
		RoomID        string               `json:"roomId"`
		Notifications NotificationSettings `json:"notifications"`
	}{RoomID: roomID, Notifications: settings}
	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/rooms.saveNotification", nil, req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &APIError{Status: http.StatusOK, Code: "not_saved", Message: "notification settings rejected"}
	}
	return nil
}

// SaveRoomSettings persists room-level settings such as the encryption flag.
func (c *Client) SaveRoomSettings(ctx context.Context, roomID string, settings RoomSettings) error {
	req := map[string]any{"rid": roomID}
	for key, value := range settings {
		req[key] = value
	}
	var resp struct {
		Result  map[string]any `json:"result"`
		Success bool           `json:"success"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/rooms.saveRoomSettings", nil, req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &APIError{Status: http.StatusOK, Code: "not_saved", Message: "room settings rejected"}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, reqBody any, respBody any) error {
	endpoint, err := c.buildURL(path, query)
	if err != nil {
		return err
	}

	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("X-Auth-Token", c.token)
	}
	if c.userID != "" {
		req.Header.Set("X-User-Id", c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload apiErrorPayload
		if err := json.Unmarshal(respData, &payload); err == nil {
			apiErr.Code = payload.Error
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(respData))
		}
		return apiErr
	}

	if respBody == nil || len(respData) == 0 {
		return nil
	}
	return json.Unmarshal(respData, respBody)
}

func (c *Client) buildURL(path string, query url.Values) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	endpoint := base.ResolveReference(ref)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}
	return endpoint.String(), nil
}
