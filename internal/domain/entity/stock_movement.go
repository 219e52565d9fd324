package entity

import (
	"time"

	"github.com/chopdesk/chopdesk-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMovement is an append-only audit record of one inventory quantity
// change. QuantityDelta is the delta actually applied, which may be smaller
// in magnitude than requested when a decrement was clamped at zero.
// Movements are never updated or deleted.
type StockMovement struct {
	ID               uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	TenantID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProductRef       uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_ref"`
	ActorID          uuid.UUID         `gorm:"type:uuid;not null" json:"actor_id"`
	MovementType     enum.MovementType `gorm:"type:varchar(30);not null" json:"movement_type"`
	QuantityDelta    int               `gorm:"not null" json:"quantity_delta"`
	PreviousQuantity int               `gorm:"not null" json:"previous_quantity"`
	NewQuantity      int               `gorm:"not null" json:"new_quantity"`
	Reason           string            `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new stock movement
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}
