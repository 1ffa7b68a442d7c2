package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studygenie/studygenie/internal/planner"
	"github.com/studygenie/studygenie/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		attemptID, _ := cmd.Flags().GetString("attempt")

		e, err := setupEnv(cmd, envOpts{requireStore: true})
		if err != nil {
			return err
		}
		defer e.Close()

		events := e.store.EventRepo()
		out := cmd.OutOrStdout()

		if attemptID != "" {
			answers, err := events.AttemptAnswers(cmd.Context(), attemptID)
			if err != nil {
				return fmt.Errorf("query answers: %w", err)
			}
			if len(answers) == 0 {
				fmt.Fprintln(out, "No answers recorded for", attemptID)
				return nil
			}
			for _, a := range answers {
				mark := "✗"
				if a.Correct {
					mark = "✓"
				}
				fmt.Fprintf(out, "%s %2d. %-14s %-24s %-6s picked %d, answer %d  (%s)\n",
					mark, a.Position+1, a.Subject, a.Topic, a.Difficulty, a.Selected, a.CorrectOption,
					planner.FormatDuration(a.TimeSpent))
			}
			return nil
		}

		attempts, err := events.QueryAttempts(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Fprintln(out, "No quizzes yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-8s  %-6s  %-5s  %-5s  %s\n",
			"ID", "Time", "Level", "Score", "%", "XP", "Topics")
		fmt.Fprintln(out, strings.Repeat("─", 110))
		for _, a := range attempts {
			fmt.Fprintf(out, "%-36s  %-16s  %-8s  %2d/%-3d  %4d%%  %-5d  %s\n",
				a.ID, a.Timestamp.Local().Format("2006-01-02 15:04"), a.Difficulty,
				a.Score, a.Total, a.Mastery, a.XP, strings.Join(a.Topics, ", "))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.Flags().String("attempt", "", "Show the answers of one attempt")
}
