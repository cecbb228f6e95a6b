// Package report archives pipeline run diagnostics (rendered prompts and
// raw completion text) for operators. Insights results themselves are
// never persisted.
package report

import (
	"context"
	"errors"
)

// Store defines operations for persisting per-run diagnostic documents.
type Store interface {
	Put(ctx context.Context, runID, name string, content []byte) error
	Get(ctx context.Context, runID, name string) ([]byte, error)
	List(ctx context.Context, runID string) ([]string, error)
}

var ErrNotFound = errors.New("report not found")
