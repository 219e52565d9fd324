package repository

import "context"

// TxManager runs a function within a single atomic transaction boundary.
// Every repository call made with the context passed to fn joins the same
// transaction; either all writes become visible together or none do.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
