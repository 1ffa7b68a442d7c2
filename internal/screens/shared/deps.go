// Package shared holds what every screen needs: the quiz engine, the
// learner's tracker, the tutor and translations.
package shared

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/studygenie/studygenie/internal/i18n"
	"github.com/studygenie/studygenie/internal/progress"
	"github.com/studygenie/studygenie/internal/quiz"
	"github.com/studygenie/studygenie/internal/tutor"
)

// Deps is shared by pointer, so a locale switch is seen by every screen.
type Deps struct {
	Engine   *quiz.Engine
	Catalog  quiz.Catalog
	Defaults quiz.Config
	// Tracker is nil when no store could be opened.
	Tracker *progress.Tracker
	Tutor   tutor.Responder
	I18n    *i18n.Bundle
	Locale  string
	Logger  *zap.Logger
	Now     func() time.Time
}

// T translates key in the current locale.
func (d *Deps) T(key string, args ...any) string {
	return d.I18n.T(key, d.Locale, args...)
}

// Clock returns the current time.
func (d *Deps) Clock() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// NextLocale switches to the next available locale and returns it.
func (d *Deps) NextLocale() string {
	codes := d.I18n.Locales()
	for i, c := range codes {
		if c == d.Locale {
			d.Locale = codes[(i+1)%len(codes)]
			return d.Locale
		}
	}
	d.Locale = i18n.DefaultLocale
	return d.Locale
}

// Subjects lists the catalog's subjects, or nil on error.
func (d *Deps) Subjects(ctx context.Context) []string {
	subjects, err := d.Catalog.Subjects(ctx)
	if err != nil {
		d.Logger.Warn("list subjects", zap.Error(err))
		return nil
	}
	return subjects
}

// StatsChangedMsg tells the app to refresh the header stats.
type StatsChangedMsg struct{}

// StatsChanged is a tea.Cmd that emits StatsChangedMsg.
func StatsChanged() tea.Msg {
	return StatsChangedMsg{}
}
