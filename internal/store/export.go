package store

import (
	"context"

	"github.com/rcliao/usodict/internal/model"
)

// ExportAll returns every stored entry in dictionary order.
func (s *SQLiteStore) ExportAll(ctx context.Context) ([]model.Entry, error) {
	return s.listEntries(ctx, "")
}
