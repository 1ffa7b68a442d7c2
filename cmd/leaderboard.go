package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studygenie/studygenie/internal/leaderboard"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show your rank among classmates",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setupEnv(cmd, envOpts{requireStore: true})
		if err != nil {
			return err
		}
		defer e.Close()

		tr, err := e.requireTracker()
		if err != nil {
			return err
		}
		self, err := tr.Entry(cmd.Context())
		if err != nil {
			return fmt.Errorf("load attempts: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-4s  %-16s  %5s  %6s  %6s  %7s\n", "Rank", "Name", "Level", "XP", "Streak", "Quizzes")
		fmt.Fprintln(out, strings.Repeat("─", 54))
		for _, en := range leaderboard.Board(self) {
			name := en.Name
			if name == self.Name {
				name += " *"
			}
			fmt.Fprintf(out, "%-4d  %-16s  %5d  %6d  %6d  %7d\n",
				en.Rank, truncate(name, 16), en.Level(), en.XP, en.Streak, en.Quizzes)
		}
		return nil
	},
}
