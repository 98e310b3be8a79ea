package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListCommandsWalksPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset := r.URL.Query().Get("offset")
		w.Header().Set("Content-Type", "application/json")
		if offset == "0" {
			fmt.Fprint(w, `{"commands":[{"command":"echo"},{"command":"giphy","providesPreview":true,"appId":"app-1"}],"total":3}`)
			return
		}
		fmt.Fprint(w, `{"commands":[{"command":"me"}],"total":3}`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "u1", "token")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	commands, err := client.ListCommands(context.Background())
	if err != nil {
		t.Fatalf("list commands: %v", err)
	}
	if len(commands) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(commands))
	}
	if commands[1].ID != "giphy" || !commands[1].ProvidesPreview || commands[1].AppID == nil {
		t.Fatalf("unexpected command: %+v", commands[1])
	}
}

func TestListThreadsParsesTimestamps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("rid"); got != "room-1" {
			t.Errorf("rid = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"threads":[{"_id":"t1","rid":"room-1","tcount":4,"tlm":"2026-08-30T12:00:00.000Z"},{"_id":"t2","rid":"room-1","tcount":0}],"total":2}`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "u1", "token")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	threads, err := client.ListThreads(context.Background(), "room-1")
	if err != nil {
		t.Fatalf("list threads: %v", err)
	}
	if len(threads) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(threads))
	}
	if threads[0].ReplyCount != 4 || threads[0].LastReplyTS == nil {
		t.Fatalf("unexpected thread: %+v", threads[0])
	}
	if want := int64(1788091200000); *threads[0].LastReplyTS != want {
		t.Fatalf("last reply ts = %d, want %d", *threads[0].LastReplyTS, want)
	}
	if threads[1].LastReplyTS != nil {
		t.Fatalf("expected no timestamp for replyless thread: %+v", threads[1])
	}
}

func TestListCustomEmojis(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"emojis":{"update":[{"name":"partyparrot","aliases":["parrot"],"extension":"gif"}]}}`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "u1", "token")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	emojis, err := client.ListCustomEmojis(context.Background())
	if err != nil {
		t.Fatalf("list emojis: %v", err)
	}
	if len(emojis) != 1 || emojis[0].Name != "partyparrot" || emojis[0].Extension != "gif" {
		t.Fatalf("unexpected emojis: %+v", emojis)
	}
}

func TestSendMessageThreadFlags(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true}`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "u1", "token")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.SendMessage(context.Background(), "room-1", "hi", "msg-7", true); err != nil {
		t.Fatalf("send message: %v", err)
	}

	message, ok := got["message"].(map[string]any)
	if !ok {
		t.Fatalf("missing message payload: %+v", got)
	}
	if message["rid"] != "room-1" || message["msg"] != "hi" || message["tmid"] != "msg-7" || message["tshow"] != true {
		t.Fatalf("unexpected payload: %+v", message)
	}
}
