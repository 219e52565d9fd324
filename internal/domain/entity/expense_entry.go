package entity

import (
	"time"

	"github.com/chopdesk/chopdesk-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseEntry is an outgoing payment recorded against an open cash session.
// A stock_purchase expense carrying both ProductRef and QuantityAdded also
// increments inventory; the linked movement id is stored on the entry.
// Entries are immutable once created.
type ExpenseEntry struct {
	ID               uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	TenantID         uuid.UUID             `gorm:"type:uuid;not null;index" json:"tenant_id"`
	SessionID        uuid.UUID             `gorm:"type:uuid;not null;index" json:"session_id"`
	Description      string                `gorm:"size:255;not null" json:"description"`
	Amount           decimal.Decimal       `gorm:"type:decimal(15,2);not null" json:"amount"`
	Category         enum.ExpenseCategory  `gorm:"type:varchar(30);not null;index" json:"category"`
	SettlementMethod enum.SettlementMethod `gorm:"type:varchar(30);not null;index" json:"settlement_method"`
	ProductRef       *uuid.UUID            `gorm:"type:uuid;index" json:"product_ref,omitempty"`
	QuantityAdded    *int                  `json:"quantity_added,omitempty"`
	StockMovementID  *uuid.UUID            `gorm:"type:uuid" json:"stock_movement_id,omitempty"`
	RecordedByID     uuid.UUID             `gorm:"type:uuid;not null;column:recorded_by" json:"recorded_by"`
	CreatedAt        time.Time             `json:"created_at"`

	// Relationships
	Session       CashSession    `gorm:"foreignKey:SessionID" json:"-"`
	StockMovement *StockMovement `gorm:"foreignKey:StockMovementID" json:"stock_movement,omitempty"`
}

// BeforeCreate generates a UUID before creating a new expense entry
func (e *ExpenseEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ExpenseEntry model
func (ExpenseEntry) TableName() string {
	return "expense_entries"
}
