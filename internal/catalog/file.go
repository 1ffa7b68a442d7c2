// Package catalog loads, validates and serves the question banks the quiz
// engine draws from.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/studygenie/studygenie/internal/quiz"
)

// SupportedMajor is the catalog format major version this build reads.
const SupportedMajor = "v1"

// Format is the encoding of a catalog file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// File is the on-disk catalog document.
type File struct {
	Version  string                 `yaml:"version" json:"version"`
	Subjects map[string]SubjectFile `yaml:"subjects" json:"subjects"`

	// order keeps subjects in document order; maps do not.
	order []string
}

// SubjectFile holds one subject's questions by tier.
type SubjectFile struct {
	Easy   []Entry `yaml:"easy,omitempty" json:"easy,omitempty"`
	Medium []Entry `yaml:"medium,omitempty" json:"medium,omitempty"`
	Hard   []Entry `yaml:"hard,omitempty" json:"hard,omitempty"`
}

// Entry is a question as written in a catalog file.
type Entry struct {
	ID               string   `yaml:"id" json:"id"`
	Question         string   `yaml:"question" json:"question"`
	Options          []string `yaml:"options" json:"options"`
	CorrectAnswer    int      `yaml:"correct_answer" json:"correct_answer"`
	Explanation      string   `yaml:"explanation,omitempty" json:"explanation,omitempty"`
	Topic            string   `yaml:"topic,omitempty" json:"topic,omitempty"`
	Concept          string   `yaml:"concept,omitempty" json:"concept,omitempty"`
	TimeEstimateSecs int      `yaml:"time_estimate_secs,omitempty" json:"time_estimate_secs,omitempty"`
}

// SubjectNames returns subject names in document order, or sorted when
// the File was built in code.
func (f *File) SubjectNames() []string {
	if len(f.order) == len(f.Subjects) {
		return append([]string(nil), f.order...)
	}
	return slices.Sorted(maps.Keys(f.Subjects))
}

// Banks converts the document into engine question banks. Difficulty comes
// from the tier key; an entry without a topic is filed under its subject.
func (f *File) Banks() map[string]quiz.TierBank {
	out := make(map[string]quiz.TierBank, len(f.Subjects))
	for name, sf := range f.Subjects {
		bank := quiz.TierBank{}
		for _, tier := range quiz.Tiers() {
			entries := sf.tier(tier)
			if len(entries) == 0 {
				continue
			}
			qs := make([]quiz.Question, len(entries))
			for i, e := range entries {
				qs[i] = e.toQuestion(name, tier)
			}
			bank[tier] = qs
		}
		out[name] = bank
	}
	return out
}

func (sf SubjectFile) tier(d quiz.Difficulty) []Entry {
	switch d {
	case quiz.DifficultyEasy:
		return sf.Easy
	case quiz.DifficultyMedium:
		return sf.Medium
	case quiz.DifficultyHard:
		return sf.Hard
	}
	return nil
}

func (e Entry) toQuestion(subject string, tier quiz.Difficulty) quiz.Question {
	topic := e.Topic
	if topic == "" {
		topic = subject
	}
	return quiz.Question{
		ID:            e.ID,
		Prompt:        e.Question,
		Options:       append([]string(nil), e.Options...),
		CorrectAnswer: e.CorrectAnswer,
		Explanation:   e.Explanation,
		Difficulty:    tier,
		Subject:       subject,
		Topic:         topic,
		Concept:       e.Concept,
		TimeEstimate:  time.Duration(e.TimeEstimateSecs) * time.Second,
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported catalog extension %q", filepath.Ext(path))
}

// Load reads and parses a catalog file.
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a catalog document, checks it against the catalog schema
// and the supported version, then runs the structural validator over every
// question. Every offending question is reported in one *InvalidError.
func Parse(data []byte, format Format) (*File, error) {
	if format != FormatYAML && format != FormatJSON {
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	// JSON is a YAML subset, so one decoder serves both.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	var raw any
	if err := doc.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var f File
	if err := doc.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	f.order = subjectOrder(&doc)

	if !semver.IsValid(f.Version) || semver.Major(f.Version) != SupportedMajor {
		return nil, fmt.Errorf("unsupported catalog version %q (want %s.x)", f.Version, SupportedMajor)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate runs the structural validator over every question and checks
// that ids are unique across the file.
func (f *File) Validate() error {
	v := &StructuralValidator{}
	var problems []*ValidationError
	seen := make(map[string]string)

	for _, name := range f.SubjectNames() {
		for _, tier := range quiz.Tiers() {
			for _, e := range f.Subjects[name].tier(tier) {
				q := e.toQuestion(name, tier)
				if verr := v.Validate(&q); verr != nil {
					problems = append(problems, verr)
				}
				if prev, dup := seen[e.ID]; dup {
					problems = append(problems, &ValidationError{
						Validator:  "unique-id",
						QuestionID: e.ID,
						Message:    fmt.Sprintf("duplicate id, first used in %s", prev),
					})
					continue
				}
				seen[e.ID] = name
			}
		}
	}
	if len(problems) > 0 {
		return &InvalidError{Problems: problems}
	}
	return nil
}

// Marshal encodes f in the given format.
func (f *File) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(f, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported catalog format %q", format)
}

// subjectOrder reads subject keys in document order from the parsed node.
func subjectOrder(doc *yaml.Node) []string {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "subjects" {
			continue
		}
		subjects := root.Content[i+1]
		var names []string
		for j := 0; j+1 < len(subjects.Content); j += 2 {
			names = append(names, subjects.Content[j].Value)
		}
		return names
	}
	return nil
}

//go:embed catalog.schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func catalogSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://catalog.json", def); err != nil {
			schemaErr = fmt.Errorf("add catalog schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://catalog.json")
	})
	return compiledSchema, schemaErr
}

// validateDocument checks the decoded document against the catalog schema.
func validateDocument(raw any) error {
	schema, err := catalogSchema()
	if err != nil {
		return err
	}

	// The validator wants JSON values; YAML decodes integers as int and
	// may produce non-string map keys. A JSON round trip normalizes both.
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("catalog is not a JSON-compatible document: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("normalize catalog: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("catalog schema: %w", err)
	}
	return nil
}
