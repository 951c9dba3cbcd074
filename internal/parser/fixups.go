package parser

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fixups.yaml
var builtinFixups []byte

// Fixups maps known-malformed raw lines to the lines that replace them.
// Lookups are exact; there is no pattern matching.
type Fixups map[string][]string

type fixupFile struct {
	Fixups []struct {
		Line    string   `yaml:"line"`
		Replace []string `yaml:"replace"`
	} `yaml:"fixups"`
}

// DefaultFixups returns the built-in correction table.
func DefaultFixups() Fixups {
	f, err := ParseFixups(builtinFixups)
	if err != nil {
		panic(fmt.Sprintf("builtin fixups: %v", err))
	}
	return f
}

// ParseFixups decodes a YAML fixup document.
func ParseFixups(data []byte) (Fixups, error) {
	var doc fixupFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode fixups: %w", err)
	}

	f := make(Fixups, len(doc.Fixups))
	for i, fx := range doc.Fixups {
		line := strings.TrimSpace(fx.Line)
		if line == "" {
			return nil, fmt.Errorf("fixup %d: empty line", i)
		}
		if _, dup := f[line]; dup {
			return nil, fmt.Errorf("fixup %d: duplicate line %q", i, line)
		}
		f[line] = fx.Replace
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// LoadFixups reads the built-in table and overlays the file at path, if any.
// Entries in the file replace built-in entries for the same line.
func LoadFixups(path string) (Fixups, error) {
	f := DefaultFixups()
	if path == "" {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixups: %w", err)
	}
	extra, err := ParseFixups(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for k, v := range extra {
		f[k] = v
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Validate checks that no replacement line is itself a key, so a single lookup
// pass is always enough.
func (f Fixups) Validate() error {
	for line, repl := range f {
		for _, r := range repl {
			if _, ok := f[r]; ok {
				return fmt.Errorf("fixup for %q produces %q which is itself fixed up", line, r)
			}
		}
	}
	return nil
}

// Apply returns the lines that stand in for line. Lines without a fixup come back
// unchanged as a single-element slice.
func (f Fixups) Apply(line string) []string {
	if repl, ok := f[line]; ok {
		return repl
	}
	return []string{line}
}
