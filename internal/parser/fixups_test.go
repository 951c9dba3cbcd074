package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFixups(t *testing.T) {
	f := DefaultFixups()
	require.Len(t, f, 47)
	require.NoError(t, f.Validate())

	for line, repl := range f {
		assert.Equal(t, repl, f.Apply(line), line)
		for _, r := range repl {
			_, again := f[r]
			assert.False(t, again, "replacement %q of %q needs a second lookup", r, line)
		}
	}
}

func TestFixupsApply(t *testing.T) {
	f := DefaultFixups()

	assert.Equal(t,
		[]string{"conjunto.", "*engarzar(se) V. (relación, sujeción)"},
		f.Apply("conjunto. engarzar(se) V. (relación, sujeción)"))
	assert.Equal(t, []string{"*resolución N."}, f.Apply("resolución N."))
	assert.Equal(t, []string{"→ [V.] suscribir(se)"}, f.Apply("→ Véase: suscribir(se)"))
	assert.Equal(t, []string{"*casa N."}, f.Apply("*casa N."))
}

func TestParseFixups_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"chained", "fixups:\n  - line: a\n    replace: [b]\n  - line: b\n    replace: [c]\n"},
		{"duplicate", "fixups:\n  - line: a\n    replace: [b]\n  - line: a\n    replace: [c]\n"},
		{"empty line", "fixups:\n  - line: \"\"\n    replace: [b]\n"},
		{"bad yaml", "fixups: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixups([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParseFixups_Drop(t *testing.T) {
	f, err := ParseFixups([]byte("fixups:\n  - line: \"— 12 —\"\n    replace: []\n"))
	require.NoError(t, err)
	assert.Empty(t, f.Apply("— 12 —"))
}

func TestLoadFixups_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixups.yaml")
	doc := "fixups:\n" +
		"  - line: \"casa N.\"\n    replace: [\"*casa N.\"]\n" +
		"  - line: \"resolución N.\"\n    replace: [\"*resolución N. (acuerdo)\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	f, err := LoadFixups(path)
	require.NoError(t, err)
	assert.Len(t, f, 48)
	assert.Equal(t, []string{"*casa N."}, f.Apply("casa N."))
	assert.Equal(t, []string{"*resolución N. (acuerdo)"}, f.Apply("resolución N."))

	_, err = LoadFixups(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	f, err = LoadFixups("")
	require.NoError(t, err)
	assert.Len(t, f, 47)
}
