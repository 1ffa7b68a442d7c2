package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studygenie/studygenie/internal/flashcards"
)

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Inspect the flashcard deck",
}

var flashcardsDueCmd = &cobra.Command{
	Use:   "due",
	Short: "List cards due for review",
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
		now := e.deps.Clock()
		deck := tr.Deck()
		due := deck.Due(now)
		out := cmd.OutOrStdout()

		stats := deck.Stats(now)
		fmt.Fprintf(out, "%d cards: %d due, %d overdue, %d mastered\n\n",
			deck.Len(), stats[flashcards.ReviewDue], stats[flashcards.ReviewOverdue], stats[flashcards.ReviewGraduated])
		if len(due) == 0 {
			fmt.Fprintln(out, "No cards are due.")
			return nil
		}

		fmt.Fprintf(out, "%-14s  %-22s  %-5s  %-8s  %s\n", "Subject", "Topic", "Stage", "Overdue", "Front")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, c := range due {
			fmt.Fprintf(out, "%-14s  %-22s  %-5d  %6.1fd  %s\n",
				truncate(c.Subject, 14), truncate(c.Topic, 22), c.Review.Stage, c.Review.OverdueDays(now), truncate(c.Front, 40))
		}
		return nil
	},
}

func init() {
	flashcardsCmd.AddCommand(flashcardsDueCmd)
}
