// Package macro loads named roll expressions, so "!roll fireball" can stand
// for "8d6".
package macro

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dbot/internal/dice"
)

// Macro is a named roll expression.
//
// Precondition: Name and Expression must be non-empty after loading.
type Macro struct {
	Name        string `yaml:"name"`
	Expression  string `yaml:"expression"`
	Description string `yaml:"description"`
}

// File is the on-disk layout of a macro YAML file.
type File struct {
	Macros []Macro `yaml:"macros"`
}

// Table indexes macros by lower-cased name.
type Table struct {
	byName map[string]Macro
}

// NewTable validates macros and indexes them.
//
// Precondition: names are unique ignoring case; expressions use valid dice grammar.
// Postcondition: Returns a Table or an error naming the first invalid macro.
func NewTable(macros []Macro) (*Table, error) {
	t := &Table{byName: make(map[string]Macro, len(macros))}
	for _, m := range macros {
		name := strings.ToLower(strings.TrimSpace(m.Name))
		if name == "" {
			return nil, fmt.Errorf("macro with expression %q has no name", m.Expression)
		}
		if strings.ContainsAny(name, " \t\n") {
			return nil, fmt.Errorf("macro name %q must be a single word", m.Name)
		}
		if _, exists := t.byName[name]; exists {
			return nil, fmt.Errorf("duplicate macro name: %q", name)
		}
		if strings.TrimSpace(m.Expression) == "" {
			return nil, fmt.Errorf("macro %q has no expression", name)
		}
		if _, err := dice.FindTerms(m.Expression); err != nil {
			return nil, fmt.Errorf("macro %q: %w", name, err)
		}
		m.Name = name
		t.byName[name] = m
	}
	return t, nil
}

// Lookup returns the macro registered under name, ignoring case.
func (t *Table) Lookup(name string) (Macro, bool) {
	if t == nil {
		return Macro{}, false
	}
	m, ok := t.byName[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// Expand returns the macro's expression when input names a macro, and input
// unchanged otherwise.
func (t *Table) Expand(input string) string {
	if m, ok := t.Lookup(input); ok {
		return m.Expression
	}
	return input
}

// All returns every macro sorted by name.
func (t *Table) All() []Macro {
	if t == nil {
		return nil
	}
	out := make([]Macro, 0, len(t.byName))
	for _, m := range t.byName {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of macros.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byName)
}

// LoadDir reads all .yaml/.yml files in dir and builds one Table from them.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns a Table (possibly empty) or a non-nil error.
func LoadDir(dir string) (*Table, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	var all []Macro
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var f File
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing macro file %s: %w", path, err)
		}
		all = append(all, f.Macros...)
	}
	return NewTable(all)
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
