package repository

import (
	"context"
	"errors"

	"github.com/chopdesk/chopdesk-api/internal/domain/entity"
	domainRepo "github.com/chopdesk/chopdesk-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type inventoryRepository struct {
	base *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) domainRepo.InventoryRepository {
	return &inventoryRepository{base: db}
}

func (r *inventoryRepository) db(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.base).WithContext(ctx)
}

func (r *inventoryRepository) GetByProductRef(ctx context.Context, productRef uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db(ctx).Scopes(TenantScope(ctx)).
		First(&item, "product_ref = ?", productRef).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

// GetForUpdate locks the inventory row for the remainder of the enclosing
// transaction. This serializes concurrent movements against the same
// (tenant, product) pair, which is the one mandatory mutual-exclusion point
// in the engine.
func (r *inventoryRepository) GetForUpdate(ctx context.Context, productRef uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db(ctx).Scopes(TenantScope(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, "product_ref = ?", productRef).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *inventoryRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.db(ctx).Model(&entity.InventoryItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *inventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	return r.db(ctx).Create(item).Error
}

type movementRepository struct {
	base *gorm.DB
}

// NewMovementRepository creates a new stock movement repository
func NewMovementRepository(db *gorm.DB) domainRepo.MovementRepository {
	return &movementRepository{base: db}
}

func (r *movementRepository) db(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.base).WithContext(ctx)
}

func (r *movementRepository) Create(ctx context.Context, movement *entity.StockMovement) error {
	return r.db(ctx).Create(movement).Error
}

func (r *movementRepository) List(ctx context.Context, params *domainRepo.MovementFilterParams) ([]entity.StockMovement, int64, error) {
	var movements []entity.StockMovement
	var total int64

	query := r.db(ctx).Model(&entity.StockMovement{}).Scopes(TenantScope(ctx))

	if params.ProductRef != nil {
		query = query.Where("product_ref = ?", *params.ProductRef)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&movements).Error

	return movements, total, err
}
