package store

import (
	"context"
	"fmt"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath       string      `json:"db_path"`
	DBSizeBytes  int64       `json:"db_size_bytes"`
	Entries      int         `json:"entries"`
	Lemmas       int         `json:"lemmas"`
	Patterns     int         `json:"patterns"`
	Examples     int         `json:"examples"`
	Prepositions []PrepStats `json:"prepositions"`
}

// PrepStats holds per-preposition counts.
type PrepStats struct {
	Prep     string `json:"prep"`
	Patterns int    `json:"patterns"`
	Lemmas   int    `json:"lemmas"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM entries`, &st.Entries},
		{`SELECT COUNT(DISTINCT lemma) FROM entries`, &st.Lemmas},
		{`SELECT COUNT(*) FROM preps`, &st.Patterns},
		{`SELECT COUNT(*) FROM examples`, &st.Examples},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.prep, COUNT(*) AS cnt, COUNT(DISTINCT e.lemma) AS lemmas
		FROM preps p JOIN entries e ON e.id = p.entry_id
		GROUP BY p.prep ORDER BY cnt DESC, p.prep`)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ps PrepStats
		if err := rows.Scan(&ps.Prep, &ps.Patterns, &ps.Lemmas); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
		st.Prepositions = append(st.Prepositions, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	return st, nil
}
