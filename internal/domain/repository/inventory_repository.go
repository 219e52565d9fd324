package repository

import (
	"context"

	"github.com/chopdesk/chopdesk-api/internal/domain/entity"
	"github.com/chopdesk/chopdesk-api/pkg/pagination"
	"github.com/google/uuid"
)

// InventoryRepository defines the interface for inventory quantity access.
// GetForUpdate must serialize concurrent readers of the same row so that two
// movements against one (tenant, product) pair cannot lose an update.
type InventoryRepository interface {
	GetByProductRef(ctx context.Context, productRef uuid.UUID) (*entity.InventoryItem, error)
	// GetForUpdate loads the row under an exclusive row-level lock; it must be
	// called inside a transaction.
	GetForUpdate(ctx context.Context, productRef uuid.UUID) (*entity.InventoryItem, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	Create(ctx context.Context, item *entity.InventoryItem) error
}

// MovementRepository defines the interface for the stock movement audit trail.
// Movements are append-only.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, params *MovementFilterParams) ([]entity.StockMovement, int64, error)
}

// MovementFilterParams contains filtering parameters for movement queries
type MovementFilterParams struct {
	Pagination *pagination.PaginationParams
	ProductRef *uuid.UUID
}
