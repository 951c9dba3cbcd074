package parser

import (
	"strings"
	"unicode/utf8"
)

// Clause markers of the extracted text.
const (
	MarkEntry    = "*"
	MarkPrep     = "·"
	MarkDiamond  = "♦"
	MarkLozenge  = "◊"
	MarkSeeAlso  = "→"
	noteMarkers  = MarkDiamond + MarkLozenge
	clauseStarts = MarkSeeAlso + MarkPrep + MarkDiamond + MarkLozenge
)

// LineKind is the structural role of one stripped input line.
type LineKind int

const (
	Noise LineKind = iota
	EntryStart
	PrepClause
	NoteDiamond
	NoteLozenge
	CrossReference
	Continuation
)

var kindNames = [...]string{
	Noise:          "noise",
	EntryStart:     "entry-start",
	PrepClause:     "prep-clause",
	NoteDiamond:    "note-diamond",
	NoteLozenge:    "note-lozenge",
	CrossReference: "cross-reference",
	Continuation:   "continuation",
}

func (k LineKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Classify returns the role of a stripped, fixed-up line. Blank lines and lines of
// a single character (letter titles, page furniture) are Noise whatever they start with.
func Classify(line string) LineKind {
	if utf8.RuneCountInString(line) <= 1 {
		return Noise
	}
	switch {
	case strings.HasPrefix(line, MarkEntry):
		return EntryStart
	case strings.HasPrefix(line, MarkPrep):
		return PrepClause
	case strings.HasPrefix(line, MarkDiamond):
		return NoteDiamond
	case strings.HasPrefix(line, MarkLozenge):
		return NoteLozenge
	case strings.HasPrefix(line, MarkSeeAlso):
		return CrossReference
	}
	return Continuation
}

// startsClause reports whether line opens a new logical clause inside an entry.
func startsClause(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return r != utf8.RuneError && strings.ContainsRune(clauseStarts, r)
}
