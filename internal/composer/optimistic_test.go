package composer

import (
	"context"
	"errors"
	"testing"

	"github.com/quillchat/quill/internal/api"
	"github.com/quillchat/quill/internal/types"
)

func seedRoom(t *testing.T, settings *RoomSettings, sub types.Subscription) {
	t.Helper()
	if sub.RID == "" {
		sub.RID = "room-1"
	}
	if sub.Name == "" {
		sub.Name = "general"
	}
	if sub.Type == "" {
		sub.Type = types.RoomTypeChannel
	}
	if err := settings.store.UpsertSubscription(sub); err != nil {
		t.Fatalf("seed subscription: %v", err)
	}
}

func TestNotificationSwitchKeptOnConfirm(t *testing.T) {
	remote := &fakeRemote{}
	settings := NewRoomSettings(openTestStore(t), remote, nil)
	seedRoom(t, settings, types.Subscription{})

	if err := settings.SetNotificationSwitch(context.Background(), "room-1", FieldDisableNotifications, true); err != nil {
		t.Fatalf("set switch: %v", err)
	}

	sub, err := settings.store.GetSubscription("room-1")
	if err != nil {
		t.Fatalf("get subscription: %v", err)
	}
	if !sub.DisableNotifications {
		t.Fatal("local mirror not updated")
	}
	if len(remote.notifCalls) != 1 || remote.notifCalls[0].Settings["disableNotifications"] != "1" {
		t.Fatalf("unexpected remote calls: %+v", remote.notifCalls)
	}
}

func TestNotificationSwitchRolledBackOnReject(t *testing.T) {
	remote := &fakeRemote{saveNotifErr: errors.New("not_saved")}
	settings := NewRoomSettings(openTestStore(t), remote, nil)
	seedRoom(t, settings, types.Subscription{MuteGroupMentions: false})

	err := settings.SetNotificationSwitch(context.Background(), "room-1", FieldMuteGroupMentions, true)
	if err == nil {
		t.Fatal("expected confirmation error")
	}

	sub, getErr := settings.store.GetSubscription("room-1")
	if getErr != nil {
		t.Fatalf("get subscription: %v", getErr)
	}
	if sub.MuteGroupMentions {
		t.Fatal("rollback did not restore previous value")
	}
}

func TestNotificationLevelRolledBackOnReject(t *testing.T) {
	remote := &fakeRemote{saveNotifErr: errors.New("not_saved")}
	settings := NewRoomSettings(openTestStore(t), remote, nil)
	seedRoom(t, settings, types.Subscription{DesktopNotifications: strptr("mentions")})

	err := settings.SetNotificationLevel(context.Background(), "room-1", FieldDesktopNotifications, "nothing")
	if err == nil {
		t.Fatal("expected confirmation error")
	}

	sub, getErr := settings.store.GetSubscription("room-1")
	if getErr != nil {
		t.Fatalf("get subscription: %v", getErr)
	}
	if sub.DesktopNotifications == nil || *sub.DesktopNotifications != "mentions" {
		t.Fatalf("rollback did not restore level: %+v", sub.DesktopNotifications)
	}
}

func TestNotificationLevelKeptOnConfirm(t *testing.T) {
	remote := &fakeRemote{}
	settings := NewRoomSettings(openTestStore(t), remote, nil)
	seedRoom(t, settings, types.Subscription{})

	if err := settings.SetNotificationLevel(context.Background(), "room-1", FieldEmailNotifications, "all"); err != nil {
		t.Fatalf("set level: %v", err)
	}
	sub, err := settings.store.GetSubscription("room-1")
	if err != nil {
		t.Fatalf("get subscription: %v", err)
	}
	if sub.EmailNotifications == nil || *sub.EmailNotifications != "all" {
		t.Fatalf("unexpected level: %+v", sub.EmailNotifications)
	}
}

func TestToggleEncryptionOptimistic(t *testing.T) {
	remote := &fakeRemote{}
	settings := NewRoomSettings(openTestStore(t), remote, nil)
	seedRoom(t, settings, types.Subscription{Encrypted: false})

	if err := settings.ToggleEncryption(context.Background(), "room-1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	sub, err := settings.store.GetSubscription("room-1")
	if err != nil {
		t.Fatalf("get subscription: %v", err)
	}
	if !sub.Encrypted {
		t.Fatal("encryption flag not flipped")
	}
	if len(remote.roomSettings) != 1 || remote.roomSettings[0]["encrypted"] != true {
		t.Fatalf("unexpected room settings calls: %+v", remote.roomSettings)
	}
}

func TestToggleEncryptionRolledBackOnReject(t *testing.T) {
	remote := &fakeRemote{saveRoomErr: &api.APIError{Status: 400, Code: "not_saved"}}
	settings := NewRoomSettings(openTestStore(t), remote, nil)
	seedRoom(t, settings, types.Subscription{Encrypted: true})

	if err := settings.ToggleEncryption(context.Background(), "room-1"); err == nil {
		t.Fatal("expected confirmation error")
	}
	sub, err := settings.store.GetSubscription("room-1")
	if err != nil {
		t.Fatalf("get subscription: %v", err)
	}
	if !sub.Encrypted {
		t.Fatal("rollback did not restore encryption flag")
	}
}

func TestToggleEncryptionUnknownRoom(t *testing.T) {
	settings := NewRoomSettings(openTestStore(t), &fakeRemote{}, nil)
	if err := settings.ToggleEncryption(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for unmirrored room")
	}
}

func TestCanToggleEncryption(t *testing.T) {
	remote := &fakeRemote{permissions: []bool{true}}
	settings := NewRoomSettings(openTestStore(t), remote, nil)
	ok, err := settings.CanToggleEncryption(context.Background(), "room-1")
	if err != nil {
		t.Fatalf("permission check: %v", err)
	}
	if !ok {
		t.Fatal("expected permission granted")
	}

	remote.permissions = []bool{false}
	ok, err = settings.CanToggleEncryption(context.Background(), "room-1")
	if err != nil || ok {
		t.Fatalf("expected denied, got ok=%v err=%v", ok, err)
	}
}
