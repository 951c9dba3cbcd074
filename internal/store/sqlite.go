package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/usodict/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id          TEXT PRIMARY KEY,
		seq         INTEGER NOT NULL,
		lemma       TEXT NOT NULL,
		pos         TEXT NOT NULL,
		sense       TEXT,
		usage       TEXT,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_entries_lemma ON entries(lemma);
	CREATE INDEX IF NOT EXISTS idx_entries_seq ON entries(seq);

	CREATE TABLE IF NOT EXISTS preps (
		id          TEXT PRIMARY KEY,
		entry_id    TEXT NOT NULL REFERENCES entries(id),
		seq         INTEGER NOT NULL,
		prep        TEXT NOT NULL,
		sense       TEXT,
		usage       TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_preps_entry ON preps(entry_id);
	CREATE INDEX IF NOT EXISTS idx_preps_prep ON preps(prep);

	CREATE TABLE IF NOT EXISTS examples (
		id          TEXT PRIMARY KEY,
		prep_id     TEXT NOT NULL REFERENCES preps(id),
		seq         INTEGER NOT NULL,
		text        TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_examples_prep ON examples(prep_id);

	CREATE VIRTUAL TABLE IF NOT EXISTS examples_fts USING fts5(
		text,
		content=examples,
		content_rowid=rowid
	);

	CREATE TRIGGER IF NOT EXISTS examples_ai AFTER INSERT ON examples BEGIN
		INSERT INTO examples_fts(rowid, text) VALUES (new.rowid, new.text);
	END;
	CREATE TRIGGER IF NOT EXISTS examples_ad AFTER DELETE ON examples BEGIN
		INSERT INTO examples_fts(examples_fts, rowid, text) VALUES('delete', old.rowid, old.text);
	END;
	`
	_, err := s.db.Exec(schema)
	return err
}

// Loader writes one conversion run into the store inside a transaction.
// It implements converter.Sink.
type Loader struct {
	s     *SQLiteStore
	tx    *sql.Tx
	now   string
	count int
}

// BeginLoad clears the stored dictionary and returns a Loader for the new one.
func (s *SQLiteStore) BeginLoad(ctx context.Context) (*Loader, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, table := range []string{"examples", "preps", "entries"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return &Loader{s: s, tx: tx, now: time.Now().UTC().Format(time.RFC3339)}, nil
}

// Emit inserts one entry with its preposition patterns and examples.
func (l *Loader) Emit(ctx context.Context, e *model.Entry) error {
	entryID := l.s.newID()
	_, err := l.tx.ExecContext(ctx,
		`INSERT INTO entries (id, seq, lemma, pos, sense, usage, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entryID, l.count, e.Lemma, encodeList(e.PartOfSpeech), nullable(e.SenseLabel),
		encodeList(e.UsageNotes), l.now)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	for i, p := range e.GovernedPreps {
		prepID := l.s.newID()
		_, err = l.tx.ExecContext(ctx,
			`INSERT INTO preps (id, entry_id, seq, prep, sense, usage) VALUES (?, ?, ?, ?, ?, ?)`,
			prepID, entryID, i, p.Preposition, nullable(p.SenseLabel), encodeList(p.UsageNotes))
		if err != nil {
			return fmt.Errorf("insert prep: %w", err)
		}
		for j, ex := range p.Examples {
			_, err = l.tx.ExecContext(ctx,
				`INSERT INTO examples (id, prep_id, seq, text) VALUES (?, ?, ?, ?)`,
				l.s.newID(), prepID, j, ex)
			if err != nil {
				return fmt.Errorf("insert example: %w", err)
			}
		}
	}

	l.count++
	return nil
}

// Count returns the number of entries emitted so far.
func (l *Loader) Count() int {
	return l.count
}

// Commit makes the loaded entries visible.
func (l *Loader) Commit() error {
	return l.tx.Commit()
}

// Rollback discards the load, keeping the previous contents.
func (l *Loader) Rollback() error {
	return l.tx.Rollback()
}

func (s *SQLiteStore) Get(ctx context.Context, p GetParams) ([]model.Entry, error) {
	entries, err := s.listEntries(ctx, `WHERE lemma = ?`, p.Lemma)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("entry not found: %s", p.Lemma)
	}
	return entries, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) listEntries(ctx context.Context, where string, args ...interface{}) ([]model.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, lemma, pos, sense, usage FROM entries `+where+` ORDER BY seq`, args...)
	if err != nil {
		return nil, err
	}

	var ids []string
	var entries []model.Entry
	for rows.Next() {
		var id string
		var pos string
		var sense, usage sql.NullString
		var e model.Entry
		if err := rows.Scan(&id, &e.Lemma, &pos, &sense, &usage); err != nil {
			rows.Close()
			return nil, err
		}
		if err := json.Unmarshal([]byte(pos), &e.PartOfSpeech); err != nil {
			rows.Close()
			return nil, fmt.Errorf("entry %s: decode pos: %w", id, err)
		}
		e.SenseLabel = sense.String
		if err := decodeList(usage, &e.UsageNotes); err != nil {
			rows.Close()
			return nil, fmt.Errorf("entry %s: decode usage: %w", id, err)
		}
		ids = append(ids, id)
		entries = append(entries, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		preps, err := s.loadPreps(ctx, id)
		if err != nil {
			return nil, err
		}
		entries[i].GovernedPreps = preps
	}
	return entries, nil
}

func (s *SQLiteStore) loadPreps(ctx context.Context, entryID string) ([]model.PrepSense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.prep, p.sense, p.usage, e.text
		 FROM preps p LEFT JOIN examples e ON e.prep_id = p.id
		 WHERE p.entry_id = ?
		 ORDER BY p.seq, e.seq`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var preps []model.PrepSense
	lastID := ""
	for rows.Next() {
		var id, prep string
		var sense, usage, example sql.NullString
		if err := rows.Scan(&id, &prep, &sense, &usage, &example); err != nil {
			return nil, err
		}
		if id != lastID {
			p := model.PrepSense{Preposition: prep, SenseLabel: sense.String}
			if err := decodeList(usage, &p.UsageNotes); err != nil {
				return nil, fmt.Errorf("prep %s: decode usage: %w", id, err)
			}
			preps = append(preps, p)
			lastID = id
		}
		if example.Valid {
			cur := &preps[len(preps)-1]
			cur.Examples = append(cur.Examples, example.String)
		}
	}
	return preps, rows.Err()
}

// encodeList stores a list as JSON, or NULL when empty.
func encodeList[T any](v []T) *string {
	if len(v) == 0 {
		return nil
	}
	b, _ := json.Marshal(v)
	s := string(b)
	return &s
}

// decodeList is the inverse of encodeList. NULL decodes to an empty list.
func decodeList[T any](s sql.NullString, v *[]T) error {
	if !s.Valid {
		return nil
	}
	return json.Unmarshal([]byte(s.String), v)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
