package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItem holds the current stock level of one product for one tenant.
// The table is shared with the warehouse and menu modules; the reconciliation
// engine only ever mutates Quantity, and only through the movement recorder.
type InventoryItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_tenant_product" json:"tenant_id"`
	ProductRef uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_tenant_product" json:"product_ref"`
	Name       string    `gorm:"size:255" json:"name"`
	Quantity   int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new inventory item
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}
