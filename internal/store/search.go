package store

import (
	"context"
	"strings"
)

// SearchParams holds parameters for searching example sentences.
type SearchParams struct {
	Query string
	Prep  string
	Limit int
}

// SearchResult is one matching example with the pattern it illustrates.
type SearchResult struct {
	Lemma   string `json:"lemma"`
	Prep    string `json:"prep"`
	Sense   string `json:"sense,omitempty"`
	Example string `json:"example"`
}

// Search runs a full-text query over example sentences. The query is matched
// as a phrase.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]SearchResult, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where := []string{"examples_fts MATCH ?"}
	args := []interface{}{ftsPhrase(p.Query)}
	if p.Prep != "" {
		where = append(where, "p.prep = ?")
		args = append(args, p.Prep)
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, `
		SELECT en.lemma, p.prep, p.sense, ex.text
		FROM examples_fts f
		JOIN examples ex ON ex.rowid = f.rowid
		JOIN preps p ON p.id = ex.prep_id
		JOIN entries en ON en.id = p.entry_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY en.seq, p.seq, ex.seq
		LIMIT ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var sense *string
		if err := rows.Scan(&r.Lemma, &r.Prep, &sense, &r.Example); err != nil {
			return nil, err
		}
		if sense != nil {
			r.Sense = *sense
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func ftsPhrase(q string) string {
	return `"` + strings.ReplaceAll(strings.TrimSpace(q), `"`, `""`) + `"`
}
