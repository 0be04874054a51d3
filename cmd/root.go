package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// configPath is where bootstrap looks for the .env file.
var configPath string

var rootCmd = &cobra.Command{
	Use:   "scripthub",
	Short: "Browse the ScriptBlox script catalog from the terminal",
	Long: `scripthub browses the ScriptBlox catalog: search, filter, sort and page
through scripts, copy a script to the clipboard, or hand it off to the
executor's editor tab.

Running without a subcommand opens the interactive browser.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		// Same as "scripthub browse"
		browseCmd.Run(browseCmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-dir", ".", "Directory containing the .env config file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
