// Package i18n looks up UI strings by key and locale and localizes tutor
// answers by phrase substitution.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLocale is the fallback for missing keys and unknown locales.
const DefaultLocale = "en"

//go:embed locales/*.yaml
var localeFS embed.FS

// Translator resolves a message key for a locale.
type Translator interface {
	T(key, locale string, args ...any) string
}

type localeFile struct {
	Name     string            `yaml:"name"`
	Messages map[string]string `yaml:"messages"`
	Phrases  map[string]string `yaml:"phrases"`
}

type locale struct {
	name     string
	messages map[string]string
	phrases  []phrase
}

type phrase struct {
	re          *regexp.Regexp
	source      string
	replacement string
}

// Bundle holds every loaded locale.
type Bundle struct {
	locales map[string]*locale
}

// Load reads every locales/<code>.yaml file from fsys.
func Load(fsys fs.FS) (*Bundle, error) {
	files, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, err
	}
	b := &Bundle{locales: make(map[string]*locale, len(files))}
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		var lf localeFile
		if err := yaml.Unmarshal(data, &lf); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		code := strings.TrimSuffix(path.Base(file), ".yaml")
		b.locales[code] = newLocale(lf)
	}
	if _, ok := b.locales[DefaultLocale]; !ok {
		return nil, fmt.Errorf("missing %s locale", DefaultLocale)
	}
	return b, nil
}

// New loads the embedded locales. The embedded files are part of the
// binary, so a failure here is a build defect and panics.
func New() *Bundle {
	b, err := Load(localeFS)
	if err != nil {
		panic(fmt.Sprintf("i18n: embedded locales: %v", err))
	}
	return b
}

func newLocale(lf localeFile) *locale {
	l := &locale{name: lf.Name, messages: lf.Messages}
	// Longer phrases first so "speed of light" wins over "light".
	sources := make([]string, 0, len(lf.Phrases))
	for src := range lf.Phrases {
		sources = append(sources, src)
	}
	slices.SortFunc(sources, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
	for _, src := range sources {
		l.phrases = append(l.phrases, phrase{
			re:          regexp.MustCompile(`(?i)` + regexp.QuoteMeta(src)),
			source:      src,
			replacement: lf.Phrases[src],
		})
	}
	return l
}

// T returns the message for key in locale, falling back to the default
// locale and then to the key itself. args are applied with fmt.Sprintf.
func (b *Bundle) T(key, code string, args ...any) string {
	msg, ok := b.lookup(key, code)
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

func (b *Bundle) lookup(key, code string) (string, bool) {
	if l := b.locales[code]; l != nil {
		if msg, ok := l.messages[key]; ok {
			return msg, true
		}
	}
	msg, ok := b.locales[DefaultLocale].messages[key]
	return msg, ok
}

// Has reports whether code is a loaded locale.
func (b *Bundle) Has(code string) bool {
	_, ok := b.locales[code]
	return ok
}

// Locales returns the loaded locale codes, sorted.
func (b *Bundle) Locales() []string {
	codes := make([]string, 0, len(b.locales))
	for code := range b.locales {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Name returns a locale's display name, or the code when unknown.
func (b *Bundle) Name(code string) string {
	if l := b.locales[code]; l != nil && l.name != "" {
		return l.name
	}
	return code
}

// Phrases returns the English-to-locale phrase table.
func (b *Bundle) Phrases(code string) map[string]string {
	out := make(map[string]string)
	if l := b.locales[code]; l != nil {
		for _, p := range l.phrases {
			out[p.source] = p.replacement
		}
	}
	return out
}

// Localize replaces every known English phrase in text with its
// translation, ignoring case. Unknown locales return text unchanged.
func (b *Bundle) Localize(text, code string) string {
	l := b.locales[code]
	if l == nil {
		return text
	}
	for _, p := range l.phrases {
		text = p.re.ReplaceAllLiteralString(text, p.replacement)
	}
	return text
}
