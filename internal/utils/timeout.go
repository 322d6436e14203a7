package utils

import (
	"context"
	"time"
)

const (
	DefaultDBTimeout = 5 * time.Second

	// Bulk reconcile touches one row per request item, so it gets more room.
	BulkDBTimeout = 30 * time.Second
)

func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultDBTimeout)
}

func WithBulkTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, BulkDBTimeout)
}
