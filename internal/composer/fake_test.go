package composer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/quillchat/quill/internal/api"
	"github.com/quillchat/quill/internal/db"
	"github.com/quillchat/quill/internal/types"
)

type runCall struct {
	Name      string
	RoomID    string
	Params    string
	TriggerID string
	TMID      string
}

type execCall struct {
	Name      string
	Params    string
	RoomID    string
	Item      types.PreviewItem
	TriggerID string
	TMID      string
}

type notifCall struct {
	RoomID   string
	Settings api.NotificationSettings
}

// fakeRemote is an in-memory Caller for tests.
type fakeRemote struct {
	mu sync.Mutex

	searchResults []api.SearchResult
	searchErr     error
	canned        []types.CannedResponse
	cannedErr     error
	preview       types.CommandPreview
	previewErr    error
	runErr        error
	saveNotifErr  error
	saveRoomErr   error
	permissions   []bool

	runCalls      []runCall
	execCalls     []execCall
	notifCalls    []notifCall
	roomSettings  []api.RoomSettings
	searchedTexts []string
}

func (f *fakeRemote) Search(ctx context.Context, text string, filterRooms, filterUsers bool) ([]api.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchedTexts = append(f.searchedTexts, text)
	return f.searchResults, f.searchErr
}

func (f *fakeRemote) CannedResponses(ctx context.Context, text string) ([]types.CannedResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canned, f.cannedErr
}

func (f *fakeRemote) CommandPreview(ctx context.Context, name, roomID, params string) (types.CommandPreview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.preview, f.previewErr
}

func (f *fakeRemote) ExecuteCommandPreview(ctx context.Context, name, params, roomID string, item types.PreviewItem, triggerID, tmid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execCalls = append(f.execCalls, execCall{Name: name, Params: params, RoomID: roomID, Item: item, TriggerID: triggerID, TMID: tmid})
	return nil
}

func (f *fakeRemote) RunCommand(ctx context.Context, name, roomID, params, triggerID, tmid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runCalls = append(f.runCalls, runCall{Name: name, RoomID: roomID, Params: params, TriggerID: triggerID, TMID: tmid})
	return f.runErr
}

func (f *fakeRemote) HasPermission(ctx context.Context, permissionIDs []string, roomID string) ([]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.permissions, nil
}

func (f *fakeRemote) SaveNotificationSettings(ctx context.Context, roomID string, settings api.NotificationSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifCalls = append(f.notifCalls, notifCall{RoomID: roomID, Settings: settings})
	return f.saveNotifErr
}

func (f *fakeRemote) SaveRoomSettings(ctx context.Context, roomID string, settings api.RoomSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roomSettings = append(f.roomSettings, settings)
	return f.saveRoomErr
}

func (f *fakeRemote) runCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.runCalls)
}

func openTestStore(t *testing.T) *db.Store {
	t.Helper()
	store, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func strptr(value string) *string {
	return &value
}
