// Package store provides the entry storage interface and SQLite implementation.
package store

import (
	"context"

	"github.com/rcliao/usodict/internal/model"
)

// GetParams holds parameters for retrieving entries.
type GetParams struct {
	Lemma string
}

// Store defines the entry storage interface.
type Store interface {
	// BeginLoad starts replacing the stored dictionary. Entries passed to the
	// returned Loader become visible on Commit.
	BeginLoad(ctx context.Context) (*Loader, error)

	// Get returns every entry for a lemma, in dictionary order.
	Get(ctx context.Context, p GetParams) ([]model.Entry, error)

	// Search finds example sentences matching a full-text query.
	Search(ctx context.Context, p SearchParams) ([]SearchResult, error)

	// Close closes the store.
	Close() error
}
