// Package render formats parsed entries for output.
package render

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rcliao/usodict/internal/model"
)

const separator = "_____"

// TextWriter prints the plain-text report. The lemma is printed, under a
// separator, only when it differs from the previous entry's lemma.
type TextWriter struct {
	w    *bufio.Writer
	prev *model.Entry
}

// NewTextWriter returns a TextWriter on w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// Emit writes one entry and flushes it.
func (t *TextWriter) Emit(_ context.Context, e *model.Entry) error {
	if t.prev == nil || t.prev.Lemma != e.Lemma {
		fmt.Fprintln(t.w, separator)
		fmt.Fprintln(t.w, e.Lemma)
	}

	pos := make([]string, len(e.PartOfSpeech))
	for i, p := range e.PartOfSpeech {
		pos[i] = string(p)
	}
	t.kv("pos", 0, strings.Join(pos, "; "))
	t.kv("usage", 1, e.UsageNotes...)

	for _, p := range e.GovernedPreps {
		t.kv("gloss", 1, p.Gloss())
		t.kv("ex", 2, p.Examples...)
		t.kv("usage", 2, p.UsageNotes...)
	}

	t.prev = e
	return t.w.Flush()
}

// Close flushes any buffered output.
func (t *TextWriter) Close() error {
	return t.w.Flush()
}

func (t *TextWriter) kv(key string, depth int, values ...string) {
	pad := strings.Repeat("  ", depth)
	for _, v := range values {
		if v == "" {
			continue
		}
		fmt.Fprintf(t.w, "%s%s: %s\n", pad, key, v)
	}
}
