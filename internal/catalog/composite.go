package catalog

import (
	"context"
	"fmt"

	"github.com/studygenie/studygenie/internal/quiz"
)

// Composite merges several catalogs. A subject's bank is the concatenation
// of every source that knows it, tier by tier, in source order; a question
// whose id was already contributed by an earlier source is dropped.
type Composite struct {
	sources []quiz.Catalog
}

// NewComposite returns a catalog over sources, consulted in order.
func NewComposite(sources ...quiz.Catalog) *Composite {
	return &Composite{sources: sources}
}

func (c *Composite) Bank(ctx context.Context, subject string) (quiz.TierBank, bool, error) {
	var merged quiz.TierBank
	seen := make(map[string]bool)

	for i, src := range c.sources {
		bank, ok, err := src.Bank(ctx, subject)
		if err != nil {
			return nil, false, fmt.Errorf("source %d: %w", i, err)
		}
		if !ok {
			continue
		}
		if merged == nil {
			merged = quiz.TierBank{}
		}
		for _, tier := range quiz.Tiers() {
			for _, q := range bank[tier] {
				if seen[q.ID] {
					continue
				}
				seen[q.ID] = true
				merged[tier] = append(merged[tier], q)
			}
		}
	}
	return merged, merged != nil, nil
}

func (c *Composite) Subjects(ctx context.Context) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for i, src := range c.sources {
		subjects, err := src.Subjects(ctx)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		for _, s := range subjects {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out, nil
}
