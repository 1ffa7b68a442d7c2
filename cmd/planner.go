package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/studygenie/studygenie/internal/planner"
)

var plannerCmd = &cobra.Command{
	Use:   "planner",
	Short: "Study recommendations and goals",
}

var plannerRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show the topics to study next",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("limit")

		e, err := setupEnv(cmd, envOpts{requireStore: true})
		if err != nil {
			return err
		}
		defer e.Close()

		tr, err := e.requireTracker()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		recs := tr.Planner().Recommendations(n)
		if len(recs) == 0 {
			fmt.Fprintln(out, e.deps.T("planner.no_topics"))
			return nil
		}

		now := e.deps.Clock()
		fmt.Fprintf(out, "%-14s  %-24s  %7s  %-8s  %8s  %s\n", "Subject", "Topic", "Mastery", "Weakness", "Attempts", "Last studied")
		fmt.Fprintln(out, strings.Repeat("─", 86))
		for _, tm := range recs {
			fmt.Fprintf(out, "%-14s  %-24s  %6d%%  %-8s  %8d  %s\n",
				truncate(tm.Subject, 14), truncate(tm.Topic, 24), tm.Mastery, tm.Weakness(), tm.Attempts, ago(tm.LastStudied, now))
		}
		return nil
	},
}

var plannerGoalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List study goals",
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
		out := cmd.OutOrStdout()
		p := tr.Planner()
		goals := p.Goals()
		if len(goals) == 0 {
			fmt.Fprintln(out, e.deps.T("planner.no_goals"))
		}
		now := e.deps.Clock()
		for _, g := range goals {
			fmt.Fprintf(out, "%-8s  %-28s  %-10s  %5.1f/%-5.1fh  %3.0f%%  %s  %dd left\n",
				g.Priority, truncate(g.Title, 28), g.Status, g.CompletedHours, g.TotalHours, g.Progress(),
				g.TargetDate.Format("2006-01-02"), g.DaysLeft(now))
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, e.deps.T("planner.study_time", planner.FormatDuration(p.TotalStudyTime())))
		return nil
	},
}

var plannerAddGoalCmd = &cobra.Command{
	Use:   "add-goal <title>",
	Short: "Add a study goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		subject, _ := f.GetString("subject")
		hours, _ := f.GetFloat64("hours")
		due, _ := f.GetString("due")
		prio, _ := f.GetString("priority")
		topics, _ := f.GetStringSlice("topics")

		target, err := time.ParseInLocation("2006-01-02", due, time.Local)
		if err != nil {
			return fmt.Errorf("--due: %w", err)
		}

		e, err := setupEnv(cmd, envOpts{requireStore: true})
		if err != nil {
			return err
		}
		defer e.Close()

		tr, err := e.requireTracker()
		if err != nil {
			return err
		}
		g, err := tr.Planner().AddGoal(planner.GoalInput{
			Title:      args[0],
			Subject:    subject,
			TargetDate: target,
			Priority:   planner.Priority(prio),
			TotalHours: hours,
			Topics:     topics,
		})
		if err != nil {
			return err
		}
		if err := tr.Save(cmd.Context(), e.deps.Clock()); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added goal %s (%s)\n", g.Title, g.ID)
		return nil
	},
}

func ago(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	days := int(now.Sub(t).Hours() / 24)
	switch days {
	case 0:
		return "today"
	case 1:
		return "yesterday"
	}
	return fmt.Sprintf("%d days ago", days)
}

func init() {
	plannerRecommendCmd.Flags().IntP("limit", "n", 5, "Number of topics to show (0 for all)")

	f := plannerAddGoalCmd.Flags()
	f.String("subject", "", "Subject the goal belongs to")
	f.Float64("hours", 10, "Planned study hours")
	f.String("due", time.Now().AddDate(0, 1, 0).Format("2006-01-02"), "Target date (YYYY-MM-DD)")
	f.String("priority", string(planner.PriorityMedium), "low, medium or high")
	f.StringSlice("topics", nil, "Topics covered by the goal")

	plannerCmd.AddCommand(plannerRecommendCmd)
	plannerCmd.AddCommand(plannerGoalsCmd)
	plannerCmd.AddCommand(plannerAddGoalCmd)
}
