package cmd

import (
	"fmt"
	"io"

	"scripthub/config"
	"scripthub/db"
	"scripthub/logger"
	"scripthub/scriptblox"

	"go.uber.org/zap"
)

// bootstrap handles shared initialization logic for commands.
func bootstrap(path string) (config.Config, *db.SlotStore, *scriptblox.Client) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logger.Log.Fatalw("Failed to load configuration", zap.Error(err))
	}

	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		logger.Log.Fatalw("Failed to open database", zap.String("path", cfg.DatabasePath), zap.Error(err))
	}
	logger.Log.Infow("Database initialized", zap.String("path", cfg.DatabasePath))

	client, err := scriptblox.NewClient(cfg, logger.Log)
	if err != nil {
		logger.Log.Fatalw("Failed to create ScriptBlox client", zap.Error(err))
	}

	return cfg, db.NewSlotStore(gdb), client
}

// consoleNotifier prints notifications for the non-interactive commands.
type consoleNotifier struct {
	w   io.Writer
	log *zap.SugaredLogger
}

func (n consoleNotifier) Success(msg string) {
	n.log.Infow(msg)
	fmt.Fprintln(n.w, "✓ "+msg)
}

func (n consoleNotifier) Error(msg string) {
	n.log.Errorw(msg)
	fmt.Fprintln(n.w, "✗ "+msg)
}

func (n consoleNotifier) Info(msg string) {
	n.log.Infow(msg)
	fmt.Fprintln(n.w, msg)
}
