package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studygenie/studygenie/internal/progress"
	"github.com/studygenie/studygenie/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a quiz and optionally grade answers",
	Long: "Generate a quiz and print it. With --answers, grade the given option indices\n" +
		"(zero-based, in question order, '-' to skip) and print the result.\n" +
		"Use the same --seed to grade a quiz printed earlier.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setupEnv(cmd, envOpts{})
		if err != nil {
			return err
		}
		defer e.Close()

		cfg, err := quizConfigFromFlags(cmd, e.deps.Defaults)
		if err != nil {
			return err
		}
		if len(cfg.Topics) == 0 {
			cfg.Topics = e.deps.Subjects(cmd.Context())
		}

		seed, _ := cmd.Flags().GetUint64("seed")
		engine := quiz.New(e.deps.Catalog, quiz.NewRand(seed))
		in, err := engine.Generate(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		raw, _ := cmd.Flags().GetString("answers")
		out := cmd.OutOrStdout()
		if raw == "" {
			if asJSON {
				return writeJSON(out, instanceJSON(in))
			}
			printInstance(out, in)
			return nil
		}

		answers, err := parseAnswers(in, raw)
		if err != nil {
			return err
		}
		res := quiz.Score(in, answers)
		if save, _ := cmd.Flags().GetBool("save"); save && e.deps.Tracker != nil {
			attempt := progress.Attempt{Instance: in, Answers: answers, BestStreak: bestStreak(res)}
			if res, _, err = e.deps.Tracker.RecordQuiz(cmd.Context(), attempt, e.deps.Clock()); err != nil {
				return fmt.Errorf("save attempt: %w", err)
			}
		}
		if asJSON {
			return writeJSON(out, resultJSON(in, res))
		}
		printResult(out, in, res, e.deps.T)
		return nil
	},
}

func init() {
	f := quizCmd.Flags()
	f.StringP("difficulty", "d", "", "easy, medium, hard or adaptive (default from config)")
	f.IntP("count", "n", 0, "Number of questions (default from config)")
	f.StringSliceP("subjects", "s", nil, "Subjects to draw from (default: all)")
	f.String("focus", "", "learning, review or test (default from config)")
	f.Uint64("seed", 0, "Shuffle seed; 0 picks one from the clock")
	f.String("answers", "", "Comma-separated option indices to grade, e.g. 1,0,2")
	f.Bool("save", true, "Record graded attempts in the database")
	f.Bool("json", false, "Print JSON instead of text")
}

func quizConfigFromFlags(cmd *cobra.Command, defaults quiz.Config) (quiz.Config, error) {
	cfg := defaults
	f := cmd.Flags()
	if s, _ := f.GetString("difficulty"); s != "" {
		d, ok := quiz.ParseDifficulty(s)
		if !ok {
			return cfg, fmt.Errorf("unknown difficulty %q", s)
		}
		cfg.Difficulty = d
	}
	if n, _ := f.GetInt("count"); n > 0 {
		cfg.QuestionCount = n
	}
	if s, _ := f.GetString("focus"); s != "" {
		fm, ok := quiz.ParseFocus(s)
		if !ok {
			return cfg, fmt.Errorf("unknown focus mode %q", s)
		}
		cfg.FocusMode = fm
	}
	if subjects, _ := f.GetStringSlice("subjects"); len(subjects) > 0 {
		cfg.Topics = subjects
	}
	return cfg, nil
}

// parseAnswers reads option indices in question order. "-" or an empty
// field marks a skipped question; missing trailing answers are skipped too.
func parseAnswers(in *quiz.Instance, raw string) ([]quiz.AnswerRecord, error) {
	fields := strings.Split(raw, ",")
	if len(fields) > in.Len() {
		return nil, fmt.Errorf("got %d answers for %d questions", len(fields), in.Len())
	}
	answers := make([]quiz.AnswerRecord, 0, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		sel := -1
		if f != "" && f != "-" {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("answer %d: %q is not an option index", i+1, f)
			}
			sel = n
		}
		answers = append(answers, quiz.RecordAnswer(in, i, sel, 0))
	}
	return answers, nil
}

func bestStreak(res quiz.Result) int {
	best, cur := 0, 0
	for _, a := range res.Answers {
		if a.Correct {
			cur++
			best = max(best, cur)
		} else {
			cur = 0
		}
	}
	return best
}

func printInstance(w io.Writer, in *quiz.Instance) {
	fmt.Fprintf(w, "Quiz %s  (%s, %s, %d questions)\n\n", in.ID, in.Config.Difficulty, in.Config.FocusMode, in.Len())
	for i, q := range in.Questions {
		fmt.Fprintf(w, "%d. [%s · %s · %s] %s\n", i+1, q.Subject, q.Topic, q.Difficulty, q.Prompt)
		for j, opt := range q.Options {
			fmt.Fprintf(w, "   %d) %s\n", j, opt)
		}
		fmt.Fprintln(w)
	}
}

func printResult(w io.Writer, in *quiz.Instance, res quiz.Result, t func(string, ...any) string) {
	for i, q := range in.Questions {
		mark := "✗"
		if i < len(res.Answers) && res.Answers[i].Correct {
			mark = "✓"
		}
		fmt.Fprintf(w, "%s %d. %s  (answer: %s)\n", mark, i+1, q.Prompt, q.CorrectOption())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, t("results.score", res.Score, res.Total))
	fmt.Fprintln(w, t("results.mastery", res.MasteryLevel))
	fmt.Fprintln(w, t("rating."+strings.ReplaceAll(res.Rating(), " ", "_")))
	if len(res.WeakAreas) > 0 {
		fmt.Fprintf(w, "%s: %s\n", t("results.weak"), strings.Join(res.WeakAreas, ", "))
	}
	if len(res.StrongAreas) > 0 {
		fmt.Fprintf(w, "%s: %s\n", t("results.strong"), strings.Join(res.StrongAreas, ", "))
	}
}

type questionOut struct {
	ID          string   `json:"id"`
	Subject     string   `json:"subject"`
	Topic       string   `json:"topic"`
	Difficulty  string   `json:"difficulty"`
	Prompt      string   `json:"question"`
	Options     []string `json:"options"`
	Correct     *int     `json:"correct_answer,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

type instanceOut struct {
	ID         string        `json:"id"`
	Difficulty string        `json:"difficulty"`
	FocusMode  string        `json:"focus_mode"`
	Topics     []string      `json:"topics"`
	Questions  []questionOut `json:"questions"`
}

type resultOut struct {
	Quiz        instanceOut `json:"quiz"`
	Score       int         `json:"score"`
	Total       int         `json:"total"`
	Mastery     int         `json:"mastery_level"`
	Rating      string      `json:"rating"`
	XP          int         `json:"xp"`
	Correct     []bool      `json:"correct"`
	WeakAreas   []string    `json:"weak_areas"`
	StrongAreas []string    `json:"strong_areas"`
}

// instanceJSON omits answers so a printed quiz can be taken honestly.
func instanceJSON(in *quiz.Instance) instanceOut {
	out := instanceOut{
		ID:         in.ID,
		Difficulty: string(in.Config.Difficulty),
		FocusMode:  string(in.Config.FocusMode),
		Topics:     in.Config.Topics,
	}
	for _, q := range in.Questions {
		out.Questions = append(out.Questions, questionOut{
			ID: q.ID, Subject: q.Subject, Topic: q.Topic, Difficulty: string(q.Difficulty),
			Prompt: q.Prompt, Options: q.Options,
		})
	}
	return out
}

func resultJSON(in *quiz.Instance, res quiz.Result) resultOut {
	out := resultOut{
		Quiz:        instanceJSON(in),
		Score:       res.Score,
		Total:       res.Total,
		Mastery:     res.MasteryLevel,
		Rating:      res.Rating(),
		XP:          res.XP(),
		Correct:     make([]bool, in.Len()),
		WeakAreas:   res.WeakAreas,
		StrongAreas: res.StrongAreas,
	}
	for i, q := range in.Questions {
		correct := q.CorrectAnswer
		out.Quiz.Questions[i].Correct = &correct
		out.Quiz.Questions[i].Explanation = q.Explanation
	}
	for i, a := range res.Answers {
		out.Correct[i] = a.Correct
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
