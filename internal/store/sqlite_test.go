package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rcliao/usodict/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleEntries() []model.Entry {
	return []model.Entry{
		{
			Lemma:        "liar",
			PartOfSpeech: []model.PartOfSpeech{model.Verb},
			SenseLabel:   "conflicto",
			GovernedPreps: []model.PrepSense{
				{Preposition: "con", SenseLabel: "conflicto", Examples: []string{"En Valencia se lio a bofetadas con el presidente."}},
			},
		},
		{
			Lemma:        "liar",
			PartOfSpeech: []model.PartOfSpeech{model.Verb},
			SenseLabel:   "pareja",
			UsageNotes:   []string{"see also: enamorar(se) (v)"},
			GovernedPreps: []model.PrepSense{
				{Preposition: "con", SenseLabel: "pareja", Examples: []string{"En Jerez me lie con la actriz joven.", "Se lio con su vecina."}},
				{Preposition: "a", UsageNotes: []string{"Uso coloquial."}},
			},
		},
		{
			Lemma:        "alto",
			PartOfSpeech: []model.PartOfSpeech{model.Adjective, model.Noun},
			GovernedPreps: []model.PrepSense{
				{Preposition: "de", Examples: []string{"Es alto de estatura."}},
			},
		},
	}
}

func loadEntries(t *testing.T, s *SQLiteStore, entries []model.Entry) {
	t.Helper()
	ctx := context.Background()
	l, err := s.BeginLoad(ctx)
	if err != nil {
		t.Fatalf("begin load: %v", err)
	}
	for i := range entries {
		if err := l.Emit(ctx, &entries[i]); err != nil {
			l.Rollback()
			t.Fatalf("emit: %v", err)
		}
	}
	if err := l.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestLoadAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	entries := sampleEntries()
	loadEntries(t, s, entries)

	got, err := s.Get(ctx, GetParams{Lemma: "liar"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if !reflect.DeepEqual(got, entries[:2]) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, entries[:2])
	}
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)
	loadEntries(t, s, sampleEntries())

	if _, err := s.Get(context.Background(), GetParams{Lemma: "nada"}); err == nil {
		t.Error("expected error for unknown lemma")
	}
}

func TestLoadReplacesContents(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	loadEntries(t, s, sampleEntries())
	loadEntries(t, s, sampleEntries()[2:])

	all, err := s.ExportAll(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(all) != 1 || all[0].Lemma != "alto" {
		t.Errorf("expected only 'alto' after reload, got %+v", all)
	}
}

func TestRollbackKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	loadEntries(t, s, sampleEntries())

	l, err := s.BeginLoad(ctx)
	if err != nil {
		t.Fatalf("begin load: %v", err)
	}
	e := sampleEntries()[2]
	l.Emit(ctx, &e)
	if err := l.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	all, _ := s.ExportAll(ctx)
	if len(all) != 3 {
		t.Errorf("expected 3 entries after rollback, got %d", len(all))
	}
}

func TestExportAllOrder(t *testing.T) {
	s := newTestStore(t)
	loadEntries(t, s, sampleEntries())

	all, err := s.ExportAll(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var lemmas []string
	for _, e := range all {
		lemmas = append(lemmas, e.Lemma)
	}
	want := []string{"liar", "liar", "alto"}
	if !reflect.DeepEqual(lemmas, want) {
		t.Errorf("expected %v, got %v", want, lemmas)
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	loadEntries(t, s, sampleEntries())

	st, err := s.Stats(context.Background(), "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Entries != 3 || st.Lemmas != 2 || st.Patterns != 4 || st.Examples != 4 {
		t.Errorf("unexpected counts: %+v", st)
	}
	if len(st.Prepositions) == 0 || st.Prepositions[0].Prep != "con" || st.Prepositions[0].Patterns != 2 {
		t.Errorf("expected 'con' to lead with 2 patterns, got %+v", st.Prepositions)
	}
}

func TestGetCorruptUsage(t *testing.T) {
	s := newTestStore(t)
	loadEntries(t, s, sampleEntries())
	ctx := context.Background()

	if _, err := s.db.ExecContext(ctx, `UPDATE entries SET usage = 'not json' WHERE lemma = 'alto'`); err != nil {
		t.Fatalf("corrupt entry: %v", err)
	}
	if _, err := s.Get(ctx, GetParams{Lemma: "alto"}); err == nil {
		t.Error("expected error for undecodable entry usage")
	}

	if _, err := s.db.ExecContext(ctx, `UPDATE preps SET usage = '{' WHERE prep = 'a'`); err != nil {
		t.Fatalf("corrupt prep: %v", err)
	}
	if _, err := s.Get(ctx, GetParams{Lemma: "liar"}); err == nil {
		t.Error("expected error for undecodable prep usage")
	}
}

func TestStatsClosedStore(t *testing.T) {
	s := newTestStore(t)
	s.Close()

	if st, err := s.Stats(context.Background(), ""); err == nil {
		t.Errorf("expected error from closed store, got %+v", st)
	}
}
