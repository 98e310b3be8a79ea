package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSearchParsesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/spotlight.search" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["text"] != "jo" || req["filterUsers"] != true {
			t.Fatalf("unexpected request: %v", req)
		}
		_, _ = w.Write([]byte(`{"results":[{"_id":"u1","username":"john"}]}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "uid", "token")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	results, err := client.Search(context.Background(), "jo", false, true)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].Username != "john" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestSaveNotificationSettingsNegativeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "uid", "token")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	err = client.SaveNotificationSettings(context.Background(), "r1", NotificationSettings{"disableNotifications": "1"})
	if err == nil {
		t.Fatal("expected error on negative success flag")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
}

func TestAPIErrorFromStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid-params","message":"missing roomId"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "uid", "token")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.CommandPreview(context.Background(), "giphy", "", "cats")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Code != "invalid-params" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if !strings.Contains(apiErr.Error(), "missing roomId") {
		t.Fatalf("unexpected message: %s", apiErr.Error())
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	if _, err := NormalizeBaseURL("chat.example.com"); err == nil {
		t.Fatal("expected error for missing scheme")
	}
	normalized, err := NormalizeBaseURL("https://chat.example.com/")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if normalized != "https://chat.example.com" {
		t.Fatalf("unexpected url: %s", normalized)
	}
}

func TestGenerateTriggerID(t *testing.T) {
	appID := "app-1"
	withApp := GenerateTriggerID(&appID)
	if !strings.HasSuffix(withApp, "/app-1") {
		t.Fatalf("expected app suffix, got %s", withApp)
	}
	bare := GenerateTriggerID(nil)
	if strings.Contains(bare, "/") {
		t.Fatalf("unexpected separator in %s", bare)
	}
}
