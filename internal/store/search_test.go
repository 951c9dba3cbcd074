package store

import (
	"context"
	"testing"
)

func TestSearch_Basic(t *testing.T) {
	s := newTestStore(t)
	loadEntries(t, s, sampleEntries())
	ctx := context.Background()

	results, err := s.Search(ctx, SearchParams{Query: "actriz"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Lemma != "liar" || results[0].Prep != "con" || results[0].Sense != "pareja" {
		t.Errorf("unexpected result: %+v", results[0])
	}

	// Phrase query across words
	results, err = s.Search(ctx, SearchParams{Query: "se lio"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// No results
	results, err = s.Search(ctx, SearchParams{Query: "javascript"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestSearch_PrepFilter(t *testing.T) {
	s := newTestStore(t)
	loadEntries(t, s, sampleEntries())
	ctx := context.Background()

	results, err := s.Search(ctx, SearchParams{Query: "es", Prep: "de"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Lemma != "alto" {
		t.Fatalf("expected only 'alto', got %+v", results)
	}
}

func TestSearch_QuotesInQuery(t *testing.T) {
	s := newTestStore(t)
	loadEntries(t, s, sampleEntries())

	if _, err := s.Search(context.Background(), SearchParams{Query: `el "presidente`}); err != nil {
		t.Fatalf("quoted query should not break FTS syntax: %v", err)
	}
}

func TestSearch_Limit(t *testing.T) {
	s := newTestStore(t)
	loadEntries(t, s, sampleEntries())

	results, err := s.Search(context.Background(), SearchParams{Query: "con", Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result with limit, got %d", len(results))
	}
}
