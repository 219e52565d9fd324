package repository

import (
	"context"

	"github.com/chopdesk/chopdesk-api/internal/domain/entity"
	domainRepo "github.com/chopdesk/chopdesk-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type revenueRepository struct {
	base *gorm.DB
}

// NewRevenueRepository creates a new revenue entry repository
func NewRevenueRepository(db *gorm.DB) domainRepo.RevenueRepository {
	return &revenueRepository{base: db}
}

func (r *revenueRepository) db(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.base).WithContext(ctx)
}

func (r *revenueRepository) Create(ctx context.Context, entry *entity.RevenueEntry) error {
	return r.db(ctx).Create(entry).Error
}

func (r *revenueRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.RevenueEntry, error) {
	var entries []entity.RevenueEntry
	err := r.db(ctx).Scopes(TenantScope(ctx)).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

type expenseRepository struct {
	base *gorm.DB
}

// NewExpenseRepository creates a new expense entry repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{base: db}
}

func (r *expenseRepository) db(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.base).WithContext(ctx)
}

func (r *expenseRepository) Create(ctx context.Context, entry *entity.ExpenseEntry) error {
	return r.db(ctx).Create(entry).Error
}

func (r *expenseRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.ExpenseEntry, error) {
	var entries []entity.ExpenseEntry
	err := r.db(ctx).Scopes(TenantScope(ctx)).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
