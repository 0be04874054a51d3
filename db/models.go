package db

import (
	"gorm.io/gorm"
)

// Slot is a single named persisted string, the local key/value storage used
// for the editor hand-off and UI preferences.
type Slot struct {
	gorm.Model
	Name  string `gorm:"uniqueIndex"` // Well-known slot name, e.g. "loadedScript"
	Value string // Raw stored value, usually JSON
}
