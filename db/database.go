package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Open opens the SQLite database at dbPath and migrates the slot schema.
func Open(dbPath string) (*gorm.DB, error) {
	// stdout belongs to the TUI, so SQL warnings go to stderr.
	newLogger := gormlogger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,       // Slow SQL threshold
			LogLevel:                  gormlogger.Silent, // Slot traffic is too chatty for Warn
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      false,
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(gormlite.Open(dbPath), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := gdb.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return gdb, nil
}

// SlotStore reads and writes named slots.
type SlotStore struct {
	db *gorm.DB
}

func NewSlotStore(gdb *gorm.DB) *SlotStore {
	return &SlotStore{db: gdb}
}

// Get returns the stored value and whether the slot exists.
func (s *SlotStore) Get(key string) (string, bool, error) {
	var slot Slot
	err := s.db.Where("name = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot '%s': %w", key, err)
	}
	return slot.Value, true, nil
}

// Set overwrites the slot; the last write wins.
func (s *SlotStore) Set(key, value string) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": value, "updated_at": time.Now()}),
	}).Create(&Slot{Name: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("failed to write slot '%s': %w", key, err)
	}
	return nil
}

// Take reads the slot and clears it in one transaction.
func (s *SlotStore) Take(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var slot Slot
		err := tx.Where("name = ?", key).First(&slot).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		value, found = slot.Value, true
		return tx.Unscoped().Delete(&slot).Error
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to take slot '%s': %w", key, err)
	}
	return value, found, nil
}

// Delete removes the slot if present.
func (s *SlotStore) Delete(key string) error {
	if err := s.db.Unscoped().Where("name = ?", key).Delete(&Slot{}).Error; err != nil {
		return fmt.Errorf("failed to delete slot '%s': %w", key, err)
	}
	return nil
}
