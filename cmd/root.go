package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/aperture/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "aperture",
	Short: "Photography fundamentals in your terminal",
	Long: "Aperture is a terminal course in photography fundamentals. Read a lesson, " +
		"shoot the assignment, and get feedback on your photo from an AI instructor.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides APERTURE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/aperture/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.Flags().Bool("no-splash", false, "Skip the opening animation")
	rootCmd.Flags().String("lesson", "", "Start on this lesson id instead of the first")

	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (file or APERTURE_DB), then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
