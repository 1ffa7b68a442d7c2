// Package sharedtest builds screen dependencies for tests.
package sharedtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/studygenie/studygenie/internal/catalog"
	"github.com/studygenie/studygenie/internal/i18n"
	"github.com/studygenie/studygenie/internal/progress"
	"github.com/studygenie/studygenie/internal/quiz"
	"github.com/studygenie/studygenie/internal/screens/shared"
	"github.com/studygenie/studygenie/internal/store"
	"github.com/studygenie/studygenie/internal/tutor"
)

// Now is the fixed clock every test deps value uses.
var Now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// Deps returns offline dependencies without a tracker.
func Deps(t testing.TB) *shared.Deps {
	t.Helper()
	cat := catalog.Default()
	return &shared.Deps{
		Engine:   quiz.New(cat, quiz.NewRand(1)),
		Catalog:  cat,
		Defaults: quiz.DefaultConfig(),
		Tutor:    tutor.NewStaticResponder(nil),
		I18n:     i18n.New(),
		Locale:   i18n.DefaultLocale,
		Logger:   zap.NewNop(),
		Now:      func() time.Time { return Now },
	}
}

// WithTracker returns Deps backed by a fresh store in a temp dir.
func WithTracker(t testing.TB) *shared.Deps {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	tr, err := progress.Load(context.Background(), "ada", s.EventRepo(), s.SnapshotRepo(), zap.NewNop())
	if err != nil {
		t.Fatalf("load tracker: %v", err)
	}
	d := Deps(t)
	d.Tracker = tr
	return d
}
