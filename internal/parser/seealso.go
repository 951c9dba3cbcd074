package parser

import (
	"fmt"
	"strings"

	"github.com/rcliao/usodict/internal/model"
)

var seeAlsoLeadIns = []string{"Véase: ", "Véase "}

// ParseSeeAlso parses the text after a "→" marker, a ", "-separated list of
// "[POS] target" and bare "target" items, into "target (pos); ..." form.
// Bare items take the category of the item before them.
func ParseSeeAlso(text string) (string, error) {
	var (
		targets []string
		current string
	)

	for _, item := range strings.Split(text, ", ") {
		tag, target, tagged := splitTagged(item)

		var pos string
		switch {
		case tagged:
			if strings.ContainsAny(tag, "[]") || strings.ContainsAny(target, "[]") {
				return "", newError(ErrMalformedCrossReference, text, "bracket inside item %q", item)
			}
			cats, err := ParsePartsOfSpeech(tag)
			if err != nil {
				return "", newError(ErrMalformedCrossReference, text, "item %q: %v", item, err)
			}
			pos = joinPOS(cats)
		case current != "":
			pos, target = current, item
			if strings.ContainsAny(target, "[]") {
				return "", newError(ErrMalformedCrossReference, text, "bracket inside item %q", item)
			}
		default:
			return "", newError(ErrMalformedCrossReference, text, "item %q has no part of speech to inherit", item)
		}

		targets = append(targets, fmt.Sprintf("%s (%s)", target, pos))
		current = pos
	}

	return strings.Join(targets, "; "), nil
}

// splitTagged splits "[tag] target", optionally preceded by a "Véase" lead-in.
func splitTagged(item string) (tag, target string, ok bool) {
	for _, lead := range seeAlsoLeadIns {
		if rest, found := strings.CutPrefix(item, lead); found && strings.HasPrefix(rest, "[") {
			item = rest
			break
		}
	}
	if !strings.HasPrefix(item, "[") {
		return "", "", false
	}
	end := strings.Index(item[1:], "] ")
	if end < 1 {
		return "", "", false
	}
	return item[1 : 1+end], item[1+end+2:], true
}

func joinPOS(cats []model.PartOfSpeech) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return strings.Join(parts, "/")
}
