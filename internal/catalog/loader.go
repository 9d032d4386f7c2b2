// Package catalog holds the static learning content: grades, subjects,
// topics, lesson cards, quizzes, map countries and Python lessons.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

//go:embed schema.json
var schemaJSON []byte

// Catalog is the merged content set. It is safe for concurrent reads.
type Catalog struct {
	grades         []Grade
	subjects       []Subject
	topics         []Topic
	content        map[string][]Card
	defaultContent []Card
	quizzes        map[string]map[QuizKind][]Question
	defaultQuiz    []Question
	countries      []Country
	pythonLessons  []PythonLesson

	schema *gojsonschema.Schema
	mu     sync.RWMutex
}

// Load builds the catalog from the embedded content, then overlays any YAML
// files found under overrideDir. Entries with an existing id replace the
// embedded ones. Invalid override files are logged and skipped.
func Load(overrideDir string) (*Catalog, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compiling content schema: %w", err)
	}

	c := &Catalog{
		content: make(map[string][]Card),
		quizzes: make(map[string]map[QuizKind][]Question),
		schema:  schema,
	}

	if err := c.loadEmbedded(); err != nil {
		return nil, fmt.Errorf("loading embedded content: %w", err)
	}

	if overrideDir != "" {
		if err := c.loadDir(overrideDir); err != nil {
			return nil, fmt.Errorf("loading content from %s: %w", overrideDir, err)
		}
	}

	slog.Info("catalog loaded",
		"grades", len(c.grades),
		"subjects", len(c.subjects),
		"topics", len(c.topics),
		"countries", len(c.countries),
		"python_lessons", len(c.pythonLessons),
	)
	return c, nil
}

func (c *Catalog) loadEmbedded() error {
	return fs.WalkDir(dataFS, "data", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(path) {
			return nil
		}
		data, err := dataFS.ReadFile(path)
		if err != nil {
			return err
		}
		// Embedded content ships with the binary, so a bad file is a build defect.
		return c.loadBundle(path, data)
	})
}

func (c *Catalog) loadDir(root string) error {
	if _, err := os.Stat(root); err != nil {
		return err
	}
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable content path", "path", path, "error", err)
			return nil
		}
		if info.IsDir() || !isYAML(path) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("skipping unreadable content file", "path", path, "error", err)
			return nil
		}
		if err := c.loadBundle(path, data); err != nil {
			slog.Warn("skipping invalid content file", "path", path, "error", err)
		}
		return nil
	})
}

func (c *Catalog) loadBundle(path string, data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if doc == nil {
		return nil
	}

	result, err := c.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validate %s: %w", path, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%s does not match content schema: %s", path, strings.Join(msgs, "; "))
	}

	var b bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	c.merge(b)
	return nil
}

func (c *Catalog) merge(b bundle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, g := range b.Grades {
		c.grades = upsert(c.grades, g, func(x Grade) string { return x.ID })
	}
	for _, s := range b.Subjects {
		c.subjects = upsert(c.subjects, s, func(x Subject) string { return x.ID })
	}
	for _, t := range b.Topics {
		c.topics = upsert(c.topics, t, func(x Topic) string { return x.ID })
	}
	for id, cards := range b.Content {
		c.content[id] = cards
	}
	if len(b.DefaultContent) > 0 {
		c.defaultContent = b.DefaultContent
	}
	for topicID, kinds := range b.Quizzes {
		if c.quizzes[topicID] == nil {
			c.quizzes[topicID] = make(map[QuizKind][]Question)
		}
		for kind, questions := range kinds {
			c.quizzes[topicID][kind] = questions
		}
	}
	if len(b.DefaultQuiz) > 0 {
		c.defaultQuiz = b.DefaultQuiz
	}
	for _, country := range b.Countries {
		c.countries = upsert(c.countries, country, func(x Country) string { return x.ID })
	}
	for _, l := range b.PythonLessons {
		c.pythonLessons = upsert(c.pythonLessons, l, func(x PythonLesson) string { return x.ID })
	}
}

// upsert replaces the entry with the same id in place, keeping declaration
// order, or appends a new one.
func upsert[T any](list []T, item T, id func(T) string) []T {
	key := id(item)
	for i := range list {
		if id(list[i]) == key {
			list[i] = item
			return list
		}
	}
	return append(list, item)
}

func isYAML(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}
