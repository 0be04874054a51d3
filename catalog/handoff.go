package catalog

import (
	"encoding/json"
	"fmt"
)

// HandoffKey is the persisted slot the editor surface reads scripts from.
const HandoffKey = "loadedScript"

// Handoff is the payload passed to the editor surface.
type Handoff struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// SlotWriter persists a named string value.
type SlotWriter interface {
	Set(key, value string) error
}

// SlotReader reads a named string value.
type SlotReader interface {
	Get(key string) (string, bool, error)
}

// SlotTaker reads a named value and clears it.
type SlotTaker interface {
	Take(key string) (string, bool, error)
}

// EncodeHandoff serializes an entry for the hand-off slot.
func EncodeHandoff(e ScriptEntry) (string, error) {
	raw, err := json.Marshal(Handoff{Name: e.Title, Content: e.Body})
	if err != nil {
		return "", fmt.Errorf("failed to encode hand-off for '%s': %w", e.Title, err)
	}
	return string(raw), nil
}

// DecodeHandoff parses a stored hand-off. Invalid JSON or a missing content
// field reports false.
func DecodeHandoff(raw string) (Handoff, bool) {
	var payload struct {
		Name    string  `json:"name"`
		Content *string `json:"content"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload.Content == nil {
		return Handoff{}, false
	}
	return Handoff{Name: payload.Name, Content: *payload.Content}, true
}

// TakeHandoff reads and clears the hand-off slot. The slot is cleared even
// when its contents are unusable.
func TakeHandoff(store SlotTaker) (Handoff, bool, error) {
	raw, found, err := store.Take(HandoffKey)
	if err != nil || !found {
		return Handoff{}, false, err
	}
	h, ok := DecodeHandoff(raw)
	return h, ok, nil
}
