package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scripthub/catalog"
	"scripthub/logger"
	"scripthub/luacheck"
)

var (
	handoffOut     string
	handoffNoCheck bool
)

// handoffCmd represents the handoff command
var handoffCmd = &cobra.Command{
	Use:   "handoff",
	Short: "Take the script sent to the editor tab",
	Long: `Read and clear the script most recently sent to the editor tab.
The script body is written to stdout, or to --out when given.

An empty or unreadable slot is not an error; nothing is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, store, _ := bootstrap(configPath)
		return takeHandoff(store, handoffOptions{
			outPath: handoffOut,
			check:   !handoffNoCheck,
		}, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	handoffCmd.Flags().StringVarP(&handoffOut, "out", "o", "", "Write the script to this file instead of stdout")
	handoffCmd.Flags().BoolVar(&handoffNoCheck, "no-check", false, "Skip the Lua syntax check")
	rootCmd.AddCommand(handoffCmd)
}

type handoffOptions struct {
	outPath string
	check   bool
}

// takeHandoff consumes the hand-off slot and writes the script body.
func takeHandoff(store catalog.SlotTaker, opts handoffOptions, out, errOut io.Writer) error {
	h, ok, err := catalog.TakeHandoff(store)
	if err != nil {
		logger.Log.Errorw("Failed to read hand-off slot", zap.Error(err))
		return fmt.Errorf("failed to read hand-off slot: %w", err)
	}
	if !ok {
		logger.Log.Infow("No usable script in hand-off slot")
		fmt.Fprintln(errOut, "No script waiting in the editor tab")
		return nil
	}

	log := logger.Log.With(zap.String("name", h.Name))
	log.Infow("Hand-off received", zap.Int("bytes", len(h.Content)))

	if opts.check {
		if err := luacheck.Check(h.Name, h.Content); err != nil {
			// Luau accepts syntax that Lua 5.2 rejects, so this only warns.
			log.Warnw("Script does not compile as Lua", zap.Error(err))
			fmt.Fprintf(errOut, "warning: %v\n", err)
		}
	}

	if opts.outPath == "" {
		_, err := io.WriteString(out, h.Content)
		if err == nil && len(h.Content) > 0 && h.Content[len(h.Content)-1] != '\n' {
			_, err = io.WriteString(out, "\n")
		}
		return err
	}

	if err := os.WriteFile(opts.outPath, []byte(h.Content), 0644); err != nil {
		log.Errorw("Failed to write script", zap.String("file", opts.outPath), zap.Error(err))
		return fmt.Errorf("failed to write '%s': %w", opts.outPath, err)
	}
	log.Infow("Script written", zap.String("file", opts.outPath))
	fmt.Fprintf(errOut, "Loaded %s into %s\n", h.Name, opts.outPath)
	return nil
}
