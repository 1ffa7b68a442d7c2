package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/studygenie/studygenie/internal/config"
	"github.com/studygenie/studygenie/internal/llm"
	"github.com/studygenie/studygenie/internal/store"
)

const stampLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded calls to the language model",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter store.LLMEventFilter
		filter.Limit, _ = cmd.Flags().GetInt("limit")
		filter.Purpose, _ = cmd.Flags().GetString("purpose")
		filter.FailedOnly, _ = cmd.Flags().GetBool("failed")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		calls, err := s.EventRepo().QueryLLMEvents(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(calls) == 0 {
			fmt.Fprintln(out, "No matching model calls.")
			return nil
		}

		t := newTable(out, "%-5v  %-19v  %-14v  %-28v  %6v  %6v  %7v  %v")
		t.header("ID", "When", "Purpose", "Model", "In", "Out", "Ms", "OK")
		for _, c := range calls {
			t.row(c.ID, c.Timestamp.Local().Format(stampLayout), c.Purpose,
				truncate(c.Model, 28), c.InputTokens, c.OutputTokens, c.LatencyMs, mark(c.Success))
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the transcript and response of one model call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		c, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("model call %d not found", id)
		}
		printCall(cmd.OutOrStdout(), c)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No model calls recorded yet.")
			return nil
		}
		printPurposeUsage(out, byPurpose)

		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return err
		}
		if len(byModel) > 0 {
			fmt.Fprintln(out)
			printModelCost(out, byModel)
		}
		return nil
	},
}

func printCall(out io.Writer, c *store.LLMRequestEventRecord) {
	fmt.Fprintf(out, "Call %d  %s\n", c.ID, c.Timestamp.Local().Format(stampLayout))
	fmt.Fprintf(out, "  %s/%s for %s\n", c.Provider, c.Model, c.Purpose)
	fmt.Fprintf(out, "  %d tokens in, %d out, %s\n", c.InputTokens, c.OutputTokens,
		(time.Duration(c.LatencyMs) * time.Millisecond).String())
	if c.Success {
		fmt.Fprintln(out, "  succeeded")
	} else {
		fmt.Fprintf(out, "  failed: %s\n", c.ErrorMessage)
	}
	section(out, "Request", c.RequestBody)
	section(out, "Response", c.ResponseBody)
}

func section(out io.Writer, title, body string) {
	fmt.Fprintf(out, "\n== %s %s\n", title, strings.Repeat("=", 56-len(title)))
	if body == "" {
		body = "(empty)"
	}
	fmt.Fprintln(out, strings.TrimRight(body, "\n"))
}

func printPurposeUsage(out io.Writer, usage []store.PurposeUsage) {
	fmt.Fprintln(out, "Usage by purpose")
	t := newTable(out, "%-16v  %6v  %10v  %10v  %10v  %8v")
	t.header("Purpose", "Calls", "Input", "Output", "Total", "Avg ms")
	var sum store.PurposeUsage
	for _, u := range usage {
		t.row(u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
		sum.Calls += u.Calls
		sum.InputTokens += u.InputTokens
		sum.OutputTokens += u.OutputTokens
	}
	t.rule()
	t.row("all", sum.Calls, sum.InputTokens, sum.OutputTokens, sum.InputTokens+sum.OutputTokens, "")
}

func printModelCost(out io.Writer, usage []store.ModelUsage) {
	fmt.Fprintln(out, "Estimated cost (USD)")
	t := newTable(out, "%-32v  %6v  %10v  %10v  %10v")
	t.header("Model", "Calls", "Input", "Output", "Cost")
	var (
		total    float64
		unpriced []string
	)
	for _, u := range usage {
		price := "?"
		if mc, ok := llm.LookupCost(u.Model); ok {
			c := mc.Cost(u.InputTokens, u.OutputTokens)
			total += c
			price = formatCost(c)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		t.row(truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, price)
	}
	t.rule()
	label := "all"
	if len(unpriced) > 0 {
		label = "all (partial)"
	}
	t.row(label, "", "", "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(out, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

// table prints fixed-width rows from a single printf layout.
type table struct {
	out    io.Writer
	layout string
	width  int
}

func newTable(out io.Writer, layout string) *table {
	return &table{out: out, layout: layout + "\n"}
}

func (t *table) header(cols ...any) {
	line := fmt.Sprintf(t.layout, cols...)
	t.width = len([]rune(strings.TrimRight(line, " \n")))
	fmt.Fprint(t.out, line)
	t.rule()
}

func (t *table) rule() {
	fmt.Fprintln(t.out, strings.Repeat("─", t.width))
}

func (t *table) row(cols ...any) {
	fmt.Fprint(t.out, strings.TrimRight(fmt.Sprintf(t.layout, cols...), " \n")+"\n")
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show calls for this purpose (question-gen, tutor)")
	llmListCmd.Flags().Bool("failed", false, "Only show failed calls")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}

// openStore opens the database without building the rest of the app, so
// the inspection commands work even when the config names an unusable
// catalog or provider.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DBPath = db
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
