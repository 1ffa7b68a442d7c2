package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studygenie/studygenie/internal/catalog"
	"github.com/studygenie/studygenie/internal/config"
	"github.com/studygenie/studygenie/internal/quiz"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate question catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subjects and question counts per difficulty",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		type source struct {
			name string
			cat  *catalog.Static
		}
		sources := []source{{"built-in", catalog.Default()}}
		for _, p := range cfg.Catalog.Paths {
			f, err := catalog.Load(p)
			if err != nil {
				return err
			}
			sources = append(sources, source{p, catalog.NewStatic(f)})
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-24s  %-28s  %5s  %6s  %5s\n", "Source", "Subject", "Easy", "Medium", "Hard")
		fmt.Fprintln(out, strings.Repeat("─", 76))
		for _, src := range sources {
			subjects, _ := src.cat.Subjects(cmd.Context())
			for _, subj := range subjects {
				n := src.cat.Count(subj)
				fmt.Fprintf(out, "%-24s  %-28s  %5d  %6d  %5d\n",
					truncate(src.name, 24), truncate(subj, 28),
					n[quiz.DifficultyEasy], n[quiz.DifficultyMedium], n[quiz.DifficultyHard])
			}
		}
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalog file against the schema and question rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := catalog.Load(args[0])
		out := cmd.OutOrStdout()
		if err != nil {
			var invalid *catalog.InvalidError
			if errors.As(err, &invalid) {
				for _, p := range invalid.Problems {
					fmt.Fprintln(out, "✗", p.Error())
				}
				return fmt.Errorf("%s: %d problems", args[0], len(invalid.Problems))
			}
			return err
		}

		total := 0
		for _, bank := range f.Banks() {
			for _, qs := range bank {
				total += len(qs)
			}
		}
		fmt.Fprintf(out, "✓ %s: %d subjects, %d questions\n", args[0], len(f.SubjectNames()), total)
		return nil
	},
}

var catalogConvertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a catalog between YAML and JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		format, err := catalog.FormatFromPath(args[1])
		if err != nil {
			return err
		}
		data, err := f.Marshal(format)
		if err != nil {
			return fmt.Errorf("encode catalog: %w", err)
		}
		return os.WriteFile(args[1], data, 0o644)
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogConvertCmd)
}
