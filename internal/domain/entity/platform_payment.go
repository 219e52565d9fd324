package entity

import (
	"time"

	"github.com/chopdesk/chopdesk-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlatformPayment is a confirmed payment from the customer-facing ordering
// flow. The ordering module owns these rows; the reconciler only reads them,
// scoped to the session's calendar day, and treats them as revenue facts.
type PlatformPayment struct {
	ID               uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	TenantID         uuid.UUID             `gorm:"type:uuid;not null;index" json:"tenant_id"`
	OrderRef         uuid.UUID             `gorm:"type:uuid;not null" json:"order_ref"`
	Amount           decimal.Decimal       `gorm:"type:decimal(15,2);not null" json:"amount"`
	SettlementMethod enum.SettlementMethod `gorm:"type:varchar(30);not null" json:"settlement_method"`
	ConfirmedAt      time.Time             `gorm:"not null;index" json:"confirmed_at"`
	CreatedAt        time.Time             `json:"created_at"`
}

// TableName returns the table name for the PlatformPayment model
func (PlatformPayment) TableName() string {
	return "platform_payments"
}
