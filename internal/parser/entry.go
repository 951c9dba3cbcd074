// Package parser recognizes the markup of the extracted dictionary text: fixups,
// line roles, headlines, preposition clauses and cross-references, and assembles
// them into entries.
package parser

import (
	"log/slog"
	"strings"

	"github.com/rcliao/usodict/internal/model"
)

// SeeAlsoPrefix introduces the usage note built from a "→" clause.
const SeeAlsoPrefix = "see also: "

// Assembler turns the raw lines of one entry into an Entry. It keeps a count of
// clauses dropped for lack of a known preposition.
type Assembler struct {
	logger  *slog.Logger
	dropped int
}

// NewAssembler returns an Assembler that logs dropped clauses to logger.
// A nil logger uses slog.Default().
func NewAssembler(logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{logger: logger}
}

// Dropped returns the number of preposition clauses skipped so far.
func (a *Assembler) Dropped() int {
	return a.dropped
}

// Assemble parses an entry from its headline line and the body lines that follow
// it, up to but not including the next entry-start line.
func (a *Assembler) Assemble(lines []string) (*model.Entry, error) {
	if len(lines) < 2 {
		return nil, newError(ErrEmptyEntry, strings.Join(lines, "\n"), "")
	}

	h, err := ParseHeadline(lines[0])
	if err != nil {
		return nil, err
	}

	entry := &model.Entry{
		Lemma:        h.Lemma,
		PartOfSpeech: h.POS,
		SenseLabel:   h.Sense,
	}
	if entry.HasPOS(model.Adjective) && entry.PartOfSpeech[0] != model.Adjective {
		return nil, newError(ErrOrderingViolation, lines[0], "adjective must be listed first")
	}

	clauses := Rejoin(lines[1:])
	for i, clause := range clauses {
		switch {
		case strings.HasPrefix(clause, MarkPrep):
			sense, ok, err := ParsePrep(clause, h.Sense)
			if err != nil {
				return nil, err
			}
			if !ok {
				a.dropped++
				a.logger.Debug("dropping clause without known preposition", "lemma", h.Lemma, "clause", clause)
				continue
			}
			entry.GovernedPreps = append(entry.GovernedPreps, sense)

		case strings.HasPrefix(clause, MarkSeeAlso):
			if i != len(clauses)-1 {
				return nil, newError(ErrOrderingViolation, clause, "cross-reference must be the last clause of %q", h.Lemma)
			}
			targets, err := ParseSeeAlso(strings.TrimSpace(strings.TrimPrefix(clause, MarkSeeAlso)))
			if err != nil {
				return nil, err
			}
			entry.UsageNotes = append(entry.UsageNotes, SeeAlsoPrefix+targets)

		case strings.HasPrefix(clause, MarkDiamond):
			entry.UsageNotes = append(entry.UsageNotes, strings.TrimSpace(strings.TrimPrefix(clause, MarkDiamond)))

		case strings.HasPrefix(clause, MarkLozenge):
			entry.UsageNotes = append(entry.UsageNotes, strings.TrimSpace(strings.TrimPrefix(clause, MarkLozenge)))

		default:
			a.logger.Debug("ignoring unmarked text", "lemma", h.Lemma, "text", clause)
		}
	}

	return entry, nil
}
