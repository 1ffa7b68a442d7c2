package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"github.com/studygenie/studygenie/internal/quiz"
)

// Static is an in-memory quiz.Catalog.
type Static struct {
	banks    map[string]quiz.TierBank
	subjects []string
}

// NewStatic builds a catalog from a parsed file.
func NewStatic(f *File) *Static {
	return &Static{banks: f.Banks(), subjects: f.SubjectNames()}
}

// FromBanks builds a catalog directly from banks. Subjects are listed in
// the given order; banks missing from order are appended sorted.
func FromBanks(banks map[string]quiz.TierBank, order ...string) *Static {
	subjects := append([]string(nil), order...)
	var rest []string
	for name := range banks {
		if !slices.Contains(subjects, name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return &Static{banks: banks, subjects: append(subjects, rest...)}
}

func (s *Static) Bank(_ context.Context, subject string) (quiz.TierBank, bool, error) {
	b, ok := s.banks[subject]
	return b, ok, nil
}

func (s *Static) Subjects(_ context.Context) ([]string, error) {
	return append([]string(nil), s.subjects...), nil
}

// Count returns the number of questions per tier for a subject.
func (s *Static) Count(subject string) map[quiz.Difficulty]int {
	out := make(map[quiz.Difficulty]int)
	for tier, qs := range s.banks[subject] {
		out[tier] = len(qs)
	}
	return out
}

//go:embed default.yaml
var defaultYAML []byte

var (
	defaultOnce sync.Once
	defaultCat  *Static
)

// Default returns the built-in catalog. It panics if the embedded file is
// invalid, which the package tests rule out.
func Default() *Static {
	defaultOnce.Do(func() {
		f, err := Parse(defaultYAML, FormatYAML)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded default catalog: %v", err))
		}
		defaultCat = NewStatic(f)
	})
	return defaultCat
}
