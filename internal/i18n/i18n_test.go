package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedLocales(t *testing.T) {
	b := New()
	assert.Equal(t, []string{"de", "en", "es", "fr", "hi", "zh"}, b.Locales())
	assert.Equal(t, "Español", b.Name("es"))
	assert.Equal(t, "xx", b.Name("xx"))
	assert.True(t, b.Has("zh"))
	assert.False(t, b.Has("xx"))
}

func TestT(t *testing.T) {
	b := New()
	tests := []struct {
		name   string
		key    string
		locale string
		args   []any
		want   string
	}{
		{"english", "home.quiz", "en", nil, "Take a quiz"},
		{"spanish", "home.quiz", "es", nil, "Hacer un cuestionario"},
		{"format args", "quiz.question_of", "fr", []any{2, 5}, "Question 2 sur 5"},
		{"percent literal", "results.mastery", "en", []any{75}, "Mastery: 75%"},
		{"falls back to english", "app.title", "de", nil, "StudyGenie"},
		{"unknown locale", "home.quit", "xx", nil, "Quit"},
		{"unknown key", "no.such.key", "es", nil, "no.such.key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.T(tt.key, tt.locale, tt.args...))
		})
	}
}

func TestEveryLocaleTranslatesTheCorePhrases(t *testing.T) {
	b := New()
	for _, code := range b.Locales() {
		if code == DefaultLocale {
			continue
		}
		phrases := b.Phrases(code)
		for _, src := range []string{"electromagnetic waves", "speed of light", "photon energy"} {
			assert.NotEmpty(t, phrases[src], "%s: %s", code, src)
		}
	}
	assert.Empty(t, b.Phrases("en"))
}

func TestLocalize(t *testing.T) {
	b := New()
	text := "Electromagnetic waves travel at the Speed of Light."

	assert.Equal(t, "ondas electromagnéticas travel at the velocidad de la luz.", b.Localize(text, "es"))
	assert.Equal(t, "电磁波 travel at the 光速.", b.Localize(text, "zh"))
	assert.Equal(t, text, b.Localize(text, "en"))
	assert.Equal(t, text, b.Localize(text, "xx"))
}

func TestLocalize_LongestPhraseFirst(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("name: English\nmessages: {}\n")},
		"locales/xx.yaml": {Data: []byte("name: Test\nphrases:\n  light: LUX\n  speed of light: C\n")},
	}
	b, err := Load(fsys)
	require.NoError(t, err)
	assert.Equal(t, "C and LUX", b.Localize("speed of light and light", "xx"))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(fstest.MapFS{"locales/es.yaml": {Data: []byte("name: x\n")}})
	assert.ErrorContains(t, err, "missing en locale")

	_, err = Load(fstest.MapFS{"locales/en.yaml": {Data: []byte("messages: [\n")}})
	assert.ErrorContains(t, err, "parse locales/en.yaml")
}
