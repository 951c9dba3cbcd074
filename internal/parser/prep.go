package parser

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rcliao/usodict/internal/model"
)

// dativeMarker is the dictionary's notation for dative government. It is a valid
// preposition slot but must never leak into example or sense text.
const dativeMarker = "DAT"

// Prepositions is the governed-preposition vocabulary, longest first and then
// lexicographic, so "a través de" is tried before "a".
var Prepositions = sortLongestFirst([]string{
	// listed in the dictionary's prologue
	"a", "a través de", "acerca de", "alrededor de", "ante", "bajo", "cerca de",
	"como", "con", "contra", "de", "dentro de", "desde", "detrás de", "durante",
	"en", "en torno a", "entre", "frente a", "hacia", "hasta", "para", "para con",
	"por", "respecto", "según", "sin", "sobre", "tras", "AC", dativeMarker, "GER",
	// used in entries but not in the prologue
	"conforme a", "en cuanto a", "a / de", "a / DAT", "de / en", "de / a",
})

func sortLongestFirst(preps []string) []string {
	slices.SortFunc(preps, func(a, b string) int {
		if c := cmp.Compare(utf8.RuneCountInString(b), utf8.RuneCountInString(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return preps
}

type note struct {
	marker rune
	text   string
}

// ParsePrep parses a "·" clause into a PrepSense. entrySense is used when the
// clause carries no sense of its own. ok is false, with a nil error, when the
// clause does not start with a known preposition; such clauses are dropped.
func ParsePrep(clause, entrySense string) (sense model.PrepSense, ok bool, err error) {
	if !strings.HasPrefix(clause, MarkPrep) {
		return model.PrepSense{}, false, newError(ErrMalformedClause, clause, "missing %s marker", MarkPrep)
	}

	head, notes := splitNotes(clause)
	if strings.ContainsAny(head, noteMarkers) {
		return model.PrepSense{}, false, newError(ErrMalformedClause, clause, "note marker left in clause")
	}
	for _, n := range notes {
		if strings.ContainsAny(n.text, noteMarkers) {
			return model.PrepSense{}, false, newError(ErrMalformedClause, clause, "note marker left in note")
		}
	}

	body := strings.TrimLeftFunc(strings.TrimPrefix(head, MarkPrep), unicode.IsSpace)
	prep, extra, matched := matchPreposition(body)
	if !matched {
		return model.PrepSense{}, false, nil
	}

	if strings.Contains(extra, dativeMarker) {
		return model.PrepSense{}, false, newError(ErrMalformedClause, clause, "%s in example text", dativeMarker)
	}

	var label string
	if strings.HasPrefix(extra, "(") {
		end := strings.IndexByte(extra, ')')
		if end < 0 {
			return model.PrepSense{}, false, newError(ErrMalformedClause, clause, "unclosed sense")
		}
		label = extra[1:end]
		extra = strings.TrimLeftFunc(extra[end+1:], unicode.IsSpace)
	}
	if label == "" {
		label = entrySense
	}

	sense = model.PrepSense{
		Preposition: prep,
		SenseLabel:  label,
		Examples:    splitExamples(extra),
	}
	for _, n := range notes {
		sense.UsageNotes = append(sense.UsageNotes, n.text)
	}

	if len(sense.Examples) == 0 && len(sense.UsageNotes) == 0 {
		return model.PrepSense{}, false, newError(ErrMalformedClause, clause, "no examples and no usage notes")
	}
	return sense, true, nil
}

// splitNotes cuts the clause at every note marker. Each marker starts a note that
// runs to the next marker or the end of the clause. Notes with no text are dropped.
func splitNotes(clause string) (string, []note) {
	i := strings.IndexAny(clause, noteMarkers)
	if i < 0 {
		return clause, nil
	}
	head, rest := clause[:i], clause[i:]

	var notes []note
	for rest != "" {
		marker, size := utf8.DecodeRuneInString(rest)
		rest = rest[size:]
		end := strings.IndexAny(rest, noteMarkers)
		if end < 0 {
			end = len(rest)
		}
		if text := strings.TrimSpace(rest[:end]); text != "" {
			notes = append(notes, note{marker: marker, text: text})
		}
		rest = rest[end:]
	}
	return head, notes
}

// matchPreposition returns the longest known preposition at the start of text that
// is followed by whitespace or the end of the text, and the text after it.
func matchPreposition(text string) (prep, extra string, ok bool) {
	for _, p := range Prepositions {
		rest, found := strings.CutPrefix(text, p)
		if !found {
			continue
		}
		if rest == "" {
			return p, "", true
		}
		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsSpace(r) {
			return p, strings.TrimLeftFunc(rest, unicode.IsSpace), true
		}
	}
	return "", "", false
}

func splitExamples(text string) []string {
	var out []string
	for _, ex := range strings.Split(text, "|") {
		if ex = strings.TrimSpace(ex); ex != "" {
			out = append(out, ex)
		}
	}
	return out
}
