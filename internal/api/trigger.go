package api

import "github.com/google/uuid"

// GenerateTriggerID creates the correlation id sent with slash-command
// execution. When the command belongs to an app, the app id is appended so
// the server can route the trigger back.
func GenerateTriggerID(appID *string) string {
	id := uuid.NewString()
	if appID != nil && *appID != "" {
		return id + "/" + *appID
	}
	return id
}
