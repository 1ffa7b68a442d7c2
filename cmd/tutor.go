package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studygenie/studygenie/internal/tutor"
)

var tutorCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Ask the tutor a question",
}

var tutorAskCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask one question and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")

		e, err := setupEnv(cmd, envOpts{})
		if err != nil {
			return err
		}
		defer e.Close()

		conv := tutor.NewConversation(e.deps.Tutor, e.deps.I18n, e.deps.Locale)
		conv.SetSubject(subject)
		msg, err := conv.Ask(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		if msg == nil {
			return fmt.Errorf("empty question")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, msg.Text)
		if len(msg.Related) > 0 {
			fmt.Fprintf(out, "\n%s: %s\n", e.deps.T("tutor.related"), strings.Join(msg.Related, ", "))
		}
		return nil
	},
}

var tutorTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topics the offline tutor knows",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range tutor.Suggestions() {
			fmt.Fprintln(cmd.OutOrStdout(), "-", s)
		}
	},
}

func init() {
	tutorAskCmd.Flags().String("subject", "", "What you are studying, passed to the AI tutor")

	tutorCmd.AddCommand(tutorAskCmd)
	tutorCmd.AddCommand(tutorTopicsCmd)
}
