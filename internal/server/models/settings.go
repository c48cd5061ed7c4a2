package models

import "encoding/json"

// Settings is the per-user settings blob. The auth flow treats it as opaque
// JSON: it is fetched on login/identity lookup and initialized at
// registration, never interpreted.
type Settings = json.RawMessage

// DefaultSettings returns the blob every new user starts with.
func DefaultSettings() Settings {
	return Settings(`{"layout":{"style":"vertical","navigation":true,"toolbar":true,"footer":true},"customScrollbars":true,"theme":"default"}`)
}
