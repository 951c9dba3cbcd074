package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rcliao/usodict/internal/model"
)

// Headline is the parsed first line of an entry.
type Headline struct {
	Lemma string
	POS   []model.PartOfSpeech
	Sense string
}

// Abbreviations accepted in a part-of-speech run.
var posTokens = []string{"Adj", "Adv", "N", "V"}

// ParseHeadline parses `<lemma> <pos>[.][/<pos>[.]...] [(<sense>)]`. Leading entry
// markers are ignored. The lemma is split at the rightmost whitespace that is
// followed by a part-of-speech run and not inside the sense label.
func ParseHeadline(line string) (Headline, error) {
	text := strings.TrimLeft(line, MarkEntry)

	var spaces []int
	for i, r := range text {
		if unicode.IsSpace(r) {
			spaces = append(spaces, i)
		}
	}

	for i := len(spaces) - 1; i >= 0; i-- {
		at := spaces[i]
		if insideParens(text[:at]) {
			continue
		}
		_, size := utf8.DecodeRuneInString(text[at:])
		rest := text[at+size:]
		n := posRun(rest)
		if n < 0 {
			continue
		}

		pos, err := ParsePartsOfSpeech(rest[:n])
		if err != nil {
			return Headline{}, newError(ErrMalformedHeadline, line, "%v", err)
		}
		return buildHeadline(line, text[:at], pos, strings.TrimSpace(rest[n:]))
	}

	return Headline{}, newError(ErrMalformedHeadline, line, "no part of speech")
}

func buildHeadline(line, word string, pos []model.PartOfSpeech, sense string) (Headline, error) {
	word = stripHomographIndex(strings.TrimSpace(word))
	if len(pos) == 1 && pos[0] == model.Verb {
		word = strings.ReplaceAll(word, "r(se)", "rse")
	}
	if !isAlphaWithSpaces(word) {
		return Headline{}, newError(ErrMalformedHeadline, line, "lemma %q is not alphabetic", word)
	}

	if sense != "" {
		if !strings.HasPrefix(sense, "(") || !strings.HasSuffix(sense, ")") || len(sense) < 2 {
			return Headline{}, newError(ErrMalformedHeadline, line, "sense %q is not parenthesized", sense)
		}
		sense = sense[1 : len(sense)-1]
	}

	return Headline{Lemma: word, POS: pos, Sense: sense}, nil
}

// posRun returns the length of the longest prefix of s that is a run of
// part-of-speech tokens joined by "/", each optionally followed by a period.
// The run must end in a period, or in a token followed by whitespace or the
// end of s. It returns -1 when s has no such prefix.
func posRun(s string) int {
	best := -1
	seen := map[int]bool{}
	frontier := []int{0}

	for len(frontier) > 0 {
		p := frontier[0]
		frontier = frontier[1:]

		for _, tok := range posTokens {
			if !strings.HasPrefix(s[p:], tok) {
				continue
			}
			q := p + len(tok)
			ends := []int{q}
			if q < len(s) && s[q] == '.' {
				ends = append(ends, q+1)
			}
			for _, e := range ends {
				if e < len(s) && s[e] == '/' {
					ends = append(ends, e+1)
				}
			}
			for _, e := range ends {
				if seen[e] {
					continue
				}
				seen[e] = true
				frontier = append(frontier, e)
				if e < len(s) && s[e] == '.' && e+1 > best {
					best = e + 1
				}
				if s[e-1] != '/' && atBoundary(s, e) && e > best {
					best = e
				}
			}
		}
	}
	return best
}

// insideParens reports whether s leaves a parenthesis open, as the prefix of a
// sense label does.
func insideParens(s string) bool {
	return strings.Count(s, "(") > strings.Count(s, ")")
}

func atBoundary(s string, i int) bool {
	if i == len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsSpace(r)
}

// ParsePartsOfSpeech converts a slash-separated abbreviation run such as
// "Adj./N." into categories.
func ParsePartsOfSpeech(text string) ([]model.PartOfSpeech, error) {
	var out []model.PartOfSpeech
	for _, tok := range strings.Split(text, "/") {
		tok = strings.Trim(strings.TrimSpace(tok), ".")
		p, ok := model.PartsOfSpeech[tok]
		if !ok {
			return nil, fmt.Errorf("unknown part of speech %q", tok)
		}
		out = append(out, p)
	}
	return out, nil
}

// stripHomographIndex removes the digit that numbers homographs, including the
// variants where it sits before a reflexive suffix:
//
//	llamar2       -> llamar
//	abstener2se   -> abstener(se)
//	abstener2(se) -> abstener(se)
//	disparar2 se  -> disparar se
func stripHomographIndex(word string) string {
	if endsWithIndex(word) {
		return word[:len(word)-1]
	}

	if stem, ok := strings.CutSuffix(word, "(se)"); ok {
		trimmed := strings.TrimRightFunc(stem, unicode.IsSpace)
		if endsWithIndex(trimmed) {
			return trimmed[:len(trimmed)-1] + "(se)"
		}
		return word
	}

	if stem, ok := strings.CutSuffix(word, "se"); ok {
		if endsWithIndex(stem) {
			return stem[:len(stem)-1] + "(se)"
		}
		trimmed := strings.TrimRightFunc(stem, unicode.IsSpace)
		if trimmed != stem && endsWithIndex(trimmed) {
			return trimmed[:len(trimmed)-1] + stem[len(trimmed):] + "se"
		}
	}
	return word
}

func endsWithIndex(s string) bool {
	return s != "" && s[len(s)-1] >= '1' && s[len(s)-1] <= '9'
}

func isAlphaWithSpaces(s string) bool {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
