package catalog

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// PrefsKey is the persisted slot holding the browser's filter and sort choices.
const PrefsKey = "scripthub-prefs"

// Preferences are the parts of QueryState that survive restarts.
type Preferences struct {
	Filters  Filters  `json:"filters"`
	SortMode SortMode `json:"sortMode"`
}

// PreferencesOf extracts the persisted part of q.
func PreferencesOf(q QueryState) Preferences {
	return Preferences{Filters: q.Filters, SortMode: q.SortMode}
}

// LoadPreferences returns the default query state with stored preferences
// applied. Missing or unreadable preferences fall back to defaults.
func LoadPreferences(store SlotReader, log *zap.SugaredLogger) QueryState {
	q := DefaultQueryState()
	raw, found, err := store.Get(PrefsKey)
	if err != nil {
		log.Warnw("Failed to read preferences, using defaults", zap.Error(err))
		return q
	}
	if !found {
		return q
	}

	var p Preferences
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Warnw("Stored preferences are not valid JSON, using defaults", zap.Error(err))
		return q
	}
	q.Filters = p.Filters
	if mode, ok := ParseSortMode(string(p.SortMode)); ok {
		q.SortMode = mode
	}
	return q
}

// SavePreferences stores p under PrefsKey.
func SavePreferences(store SlotWriter, p Preferences) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	return store.Set(PrefsKey, string(raw))
}
