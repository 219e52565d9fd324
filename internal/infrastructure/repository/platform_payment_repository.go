package repository

import (
	"context"
	"time"

	"github.com/chopdesk/chopdesk-api/internal/domain/entity"
	domainRepo "github.com/chopdesk/chopdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type platformPaymentRepository struct {
	base *gorm.DB
}

// NewPlatformPaymentRepository creates a read-only view over the ordering
// module's confirmed payments table.
func NewPlatformPaymentRepository(db *gorm.DB) domainRepo.PlatformPaymentRepository {
	return &platformPaymentRepository{base: db}
}

func (r *platformPaymentRepository) db(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.base).WithContext(ctx)
}

func (r *platformPaymentRepository) ListConfirmed(ctx context.Context, from, to time.Time) ([]entity.PlatformPayment, error) {
	var payments []entity.PlatformPayment
	err := r.db(ctx).Scopes(TenantScope(ctx)).
		Where("confirmed_at BETWEEN ? AND ?", from, to).
		Order("confirmed_at ASC").
		Find(&payments).Error
	return payments, err
}
