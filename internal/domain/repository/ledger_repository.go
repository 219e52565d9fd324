package repository

import (
	"context"

	"github.com/chopdesk/chopdesk-api/internal/domain/entity"
	"github.com/google/uuid"
)

// RevenueRepository defines the interface for revenue entry data operations.
// Entries are append-only; there is no update or delete.
type RevenueRepository interface {
	Create(ctx context.Context, entry *entity.RevenueEntry) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.RevenueEntry, error)
}

// ExpenseRepository defines the interface for expense entry data operations.
// Entries are append-only; there is no update or delete.
type ExpenseRepository interface {
	Create(ctx context.Context, entry *entity.ExpenseEntry) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.ExpenseEntry, error)
}
