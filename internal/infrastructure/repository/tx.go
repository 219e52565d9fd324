package repository

import (
	"context"

	domainRepo "github.com/chopdesk/chopdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager backed by gorm transactions
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

// WithinTx opens a database transaction and runs fn with a context carrying
// the transaction handle. Repositories resolve the handle via dbFromContext,
// so every write inside fn commits or rolls back as one unit.
func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
