package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scripthub/catalog"
	"scripthub/logger"
	"scripthub/ui"
)

// prefsCmd groups the stored preference commands
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or reset the saved filter and sort preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved filter and sort preferences",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		_, store, _ := bootstrap(configPath)
		showPrefs(store, cmd.OutOrStdout())
	},
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the saved filter and sort preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, store, _ := bootstrap(configPath)
		return resetPrefs(store, cmd.OutOrStdout())
	},
}

func init() {
	prefsCmd.AddCommand(prefsShowCmd, prefsResetCmd)
	rootCmd.AddCommand(prefsCmd)
}

type prefsDeleter interface {
	Delete(key string) error
}

func showPrefs(store catalog.SlotReader, w io.Writer) {
	q := catalog.LoadPreferences(store, logger.Log)
	fmt.Fprintln(w, ui.Toggle("Strict", q.Filters.Strict))
	fmt.Fprintln(w, ui.Toggle("Verified only", q.Filters.VerifiedOnly))
	fmt.Fprintln(w, ui.Toggle("Keyless only", q.Filters.KeylessOnly))
	fmt.Fprintln(w, ui.Toggle("Universal only", q.Filters.UniversalOnly))
	fmt.Fprintln(w, ui.Toggle("Not patched only", q.Filters.NotPatchedOnly))
	fmt.Fprintf(w, "Sort: %s\n", q.SortMode.Label())
}

func resetPrefs(store prefsDeleter, w io.Writer) error {
	if err := store.Delete(catalog.PrefsKey); err != nil {
		logger.Log.Errorw("Failed to reset preferences", zap.Error(err))
		return fmt.Errorf("failed to reset preferences: %w", err)
	}
	logger.Log.Infow("Preferences reset")
	fmt.Fprintln(w, "Preferences reset to defaults")
	return nil
}
