// Package model defines the dictionary entry data types.
package model

// PartOfSpeech is a grammatical category of a headword.
type PartOfSpeech string

const (
	Noun      PartOfSpeech = "n"
	Verb      PartOfSpeech = "v"
	Adjective PartOfSpeech = "adj"
	Adverb    PartOfSpeech = "adv"
)

// PartsOfSpeech maps the dictionary's category abbreviations to categories.
var PartsOfSpeech = map[string]PartOfSpeech{
	"N":   Noun,
	"V":   Verb,
	"Adj": Adjective,
	"Adv": Adverb,
}

// Entry is one headword-sense group of the dictionary.
type Entry struct {
	Lemma         string         `json:"lemma"`
	PartOfSpeech  []PartOfSpeech `json:"pos,omitempty"`
	SenseLabel    string         `json:"sense,omitempty"`
	UsageNotes    []string       `json:"usage,omitempty"`
	GovernedPreps []PrepSense    `json:"preps,omitempty"`
}

// PrepSense is one preposition-government pattern under an entry.
type PrepSense struct {
	Preposition string   `json:"prep"`
	SenseLabel  string   `json:"sense,omitempty"`
	Examples    []string `json:"ex,omitempty"`
	UsageNotes  []string `json:"usage,omitempty"`
}

// Gloss renders the preposition with its sense in parentheses, if any.
func (p PrepSense) Gloss() string {
	if p.SenseLabel == "" {
		return p.Preposition
	}
	return p.Preposition + " (" + p.SenseLabel + ")"
}

// HasPOS reports whether the entry lists the given category.
func (e *Entry) HasPOS(pos PartOfSpeech) bool {
	for _, p := range e.PartOfSpeech {
		if p == pos {
			return true
		}
	}
	return false
}
