package parser

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/usodict/internal/model"
)

func TestAssemble(t *testing.T) {
	a := NewAssembler(nil)
	entry, err := a.Assemble([]string{
		"*liar V. (conflicto)",
		"· con Es un tipo conflictivo: en Valencia se lio a bofetadas",
		"con el entonces presidente.",
		"· en Se lio en una discusión. ♦ Coloquial.",
		"♦ Uso frecuente",
		"en España.",
		"◊ También pronominal.",
		"→ [V.] enredar, embrollar",
	})
	require.NoError(t, err)

	assert.Equal(t, &model.Entry{
		Lemma:        "liar",
		PartOfSpeech: []model.PartOfSpeech{model.Verb},
		SenseLabel:   "conflicto",
		UsageNotes: []string{
			"Uso frecuente en España.",
			"También pronominal.",
			"see also: enredar (v); embrollar (v)",
		},
		GovernedPreps: []model.PrepSense{
			{
				Preposition: "con",
				SenseLabel:  "conflicto",
				Examples:    []string{"Es un tipo conflictivo: en Valencia se lio a bofetadas con el entonces presidente."},
			},
			{
				Preposition: "en",
				SenseLabel:  "conflicto",
				Examples:    []string{"Se lio en una discusión."},
				UsageNotes:  []string{"Coloquial."},
			},
		},
	}, entry)
	assert.Zero(t, a.Dropped())
}

func TestAssemble_DropsUnmatched(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	a := NewAssembler(logger)
	entry, err := a.Assemble([]string{
		"*casa N.",
		"· y otros usos del término",
		"· de Casa de campo.",
	})
	require.NoError(t, err)
	require.Len(t, entry.GovernedPreps, 1)
	assert.Equal(t, "de", entry.GovernedPreps[0].Preposition)
	assert.Equal(t, 1, a.Dropped())
	assert.Contains(t, logs.String(), "dropping clause")
}

func TestAssemble_Errors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  error
	}{
		{"headline only", []string{"*casa N."}, ErrEmptyEntry},
		{"bad headline", []string{"*casa", "· de Casa de campo."}, ErrMalformedHeadline},
		{"adjective not first", []string{"*alto N./Adj.", "· de Alto de estatura."}, ErrOrderingViolation},
		{"see also not last", []string{"*casa N.", "→ [N.] hogar", "· de Casa de campo."}, ErrOrderingViolation},
		{"bad clause", []string{"*casa N.", "· de"}, ErrMalformedClause},
		{"bad see also", []string{"*casa N.", "· de Casa de campo.", "→ hogar"}, ErrMalformedCrossReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAssembler(nil).Assemble(tt.lines)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAssemble_IgnoresUnmarkedLead(t *testing.T) {
	entry, err := NewAssembler(nil).Assemble([]string{
		"*casa N.",
		"texto sin marca",
		"· de Casa de campo.",
	})
	require.NoError(t, err)
	assert.Len(t, entry.GovernedPreps, 1)
	assert.Empty(t, entry.UsageNotes)
}
