// Package converter drives the parser over an input stream, one entry at a time.
package converter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/rcliao/usodict/internal/model"
	"github.com/rcliao/usodict/internal/parser"
)

// DefaultPrologueMarker is the line that ends the dictionary's front matter.
const DefaultPrologueMarker = "Utrecht, marzo de 2020"

const maxLineSize = 1 << 20

// ErrNoPrologue is returned when the input never reaches the prologue marker.
var ErrNoPrologue = errors.New("prologue marker not found")

// Sink receives each entry once, in input order.
type Sink interface {
	Emit(ctx context.Context, e *model.Entry) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e *model.Entry) error

func (f SinkFunc) Emit(ctx context.Context, e *model.Entry) error { return f(ctx, e) }

// Options configures a Converter.
type Options struct {
	PrologueMarker   string
	Fixups           parser.Fixups
	NormalizeUnicode bool
	Logger           *slog.Logger
}

// Result summarizes a run.
type Result struct {
	Lines   int `json:"lines"`
	Entries int `json:"entries"`
	Dropped int `json:"dropped_clauses"`
}

// Converter reads extracted dictionary text and emits parsed entries.
type Converter struct {
	opts Options
}

// New returns a Converter. Zero-valued options fall back to the built-in fixups,
// the default prologue marker and slog.Default().
func New(opts Options) *Converter {
	if opts.PrologueMarker == "" {
		opts.PrologueMarker = DefaultPrologueMarker
	}
	if opts.Fixups == nil {
		opts.Fixups = parser.DefaultFixups()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Converter{opts: opts}
}

type state int

const (
	beforePrologue state = iota
	idle
	inEntry
)

// run holds the per-call state; nothing outlives a Run.
type run struct {
	opts      Options
	sink      Sink
	asm       *parser.Assembler
	state     state
	lines     []string
	startLine int
	result    Result
}

// Run converts r, passing each entry to sink. The first fatal parse error stops
// the run; entries emitted before it stay emitted.
func (c *Converter) Run(ctx context.Context, r io.Reader, sink Sink) (Result, error) {
	st := &run{
		opts: c.opts,
		sink: sink,
		asm:  parser.NewAssembler(c.opts.Logger),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		if err := st.feed(ctx, lineNo, sc.Text()); err != nil {
			return st.done(), err
		}
	}
	if err := sc.Err(); err != nil {
		return st.done(), fmt.Errorf("read input: %w", err)
	}

	if st.state == beforePrologue {
		return st.done(), fmt.Errorf("%w: %q", ErrNoPrologue, c.opts.PrologueMarker)
	}
	if st.state == inEntry {
		if err := st.finish(ctx); err != nil {
			return st.done(), err
		}
	}
	return st.done(), nil
}

func (st *run) feed(ctx context.Context, lineNo int, raw string) error {
	st.result.Lines++

	line := strings.TrimSpace(raw)
	if st.opts.NormalizeUnicode {
		line = norm.NFC.String(line)
	}

	if st.state == beforePrologue {
		if strings.HasPrefix(line, st.opts.PrologueMarker) {
			st.state = idle
		}
		return nil
	}

	for _, l := range st.opts.Fixups.Apply(line) {
		switch parser.Classify(l) {
		case parser.Noise:
			continue
		case parser.EntryStart:
			if st.state == inEntry {
				if err := st.finish(ctx); err != nil {
					return err
				}
			}
			st.state = inEntry
			st.lines = []string{l}
			st.startLine = lineNo
			continue
		}

		if st.state == idle {
			st.opts.Logger.Debug("skipping text before first entry", "line", lineNo, "text", l)
			continue
		}
		st.lines = append(st.lines, l)
	}
	return nil
}

func (st *run) finish(ctx context.Context) error {
	entry, err := st.asm.Assemble(st.lines)
	st.lines = nil
	if err != nil {
		return fmt.Errorf("entry at line %d: %w", st.startLine, err)
	}
	if err := st.sink.Emit(ctx, entry); err != nil {
		return fmt.Errorf("emit %q: %w", entry.Lemma, err)
	}
	st.result.Entries++
	return nil
}

func (st *run) done() Result {
	st.result.Dropped = st.asm.Dropped()
	return st.result
}
