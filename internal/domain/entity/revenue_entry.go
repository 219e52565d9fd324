package entity

import (
	"time"

	"github.com/chopdesk/chopdesk-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RevenueEntry is a manually recorded sale against an open cash session.
// TotalAmount is always computed server-side from quantity and unit amount.
// Entries are immutable once created.
type RevenueEntry struct {
	ID               uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	TenantID         uuid.UUID             `gorm:"type:uuid;not null;index" json:"tenant_id"`
	SessionID        uuid.UUID             `gorm:"type:uuid;not null;index" json:"session_id"`
	Description      string                `gorm:"size:255;not null" json:"description"`
	Quantity         int                   `gorm:"not null" json:"quantity"`
	UnitAmount       decimal.Decimal       `gorm:"type:decimal(15,2);not null" json:"unit_amount"`
	TotalAmount      decimal.Decimal       `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	SettlementMethod enum.SettlementMethod `gorm:"type:varchar(30);not null;index" json:"settlement_method"`
	RevenueKind      enum.RevenueKind      `gorm:"type:varchar(20);not null" json:"revenue_kind"`
	ProductRef       *uuid.UUID            `gorm:"type:uuid;index" json:"product_ref,omitempty"`
	StockMovementID  *uuid.UUID            `gorm:"type:uuid" json:"stock_movement_id,omitempty"`
	RecordedByID     uuid.UUID             `gorm:"type:uuid;not null;column:recorded_by" json:"recorded_by"`
	CreatedAt        time.Time             `json:"created_at"`

	// Relationships
	Session       CashSession    `gorm:"foreignKey:SessionID" json:"-"`
	StockMovement *StockMovement `gorm:"foreignKey:StockMovementID" json:"stock_movement,omitempty"`
}

// BeforeCreate generates a UUID before creating a new revenue entry
func (e *RevenueEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RevenueEntry model
func (RevenueEntry) TableName() string {
	return "revenue_entries"
}
