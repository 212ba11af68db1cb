package cmd

import (
	"github.com/akarsh/studyforge/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studyforge",
	Short: "Turn study text into guides, quizzes, and adaptive assessments",
	Long: "StudyForge analyzes raw study text into concepts, assembles study guides,\n" +
		"builds quizzes from them, and adapts quiz difficulty to recorded performance.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYFORGE_DB env var)")

	rootCmd.AddCommand(guideCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(adaptiveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYFORGE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
