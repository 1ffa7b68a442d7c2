package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studygenie",
	Short: "Terminal study companion",
	Long: "StudyGenie: quizzes, flashcards, a study planner and an AI tutor in your terminal.\n" +
		"Runs offline with the built-in question bank; set an LLM provider to generate questions and chat with an AI tutor.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// ExecuteContext runs the root command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: studygenie.yaml in ., ./config or $XDG_CONFIG_HOME/studygenie)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYGENIE_DB env var)")
	rootCmd.PersistentFlags().String("locale", "", "UI and tutor language (en, es, fr, de, zh, hi)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(flashcardsCmd)
	rootCmd.AddCommand(plannerCmd)
	rootCmd.AddCommand(tutorCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
