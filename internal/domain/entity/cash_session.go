package entity

import (
	"time"

	"github.com/chopdesk/chopdesk-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CashSession tracks one till's cash lifecycle for a single calendar day.
// At most one open session may exist per (tenant, session date). The closing
// columns stay NULL while the session is open and are written exactly once,
// atomically, at close time; the row is immutable afterwards.
type CashSession struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID           uuid.UUID          `gorm:"type:uuid;not null;index:idx_session_tenant_date" json:"tenant_id"`
	SessionDate        time.Time          `gorm:"type:date;not null;index:idx_session_tenant_date" json:"session_date"`
	OpeningBalance     decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"opening_balance"`
	ClosingBalance     *decimal.Decimal   `gorm:"type:decimal(15,2)" json:"closing_balance,omitempty"`
	TheoreticalBalance *decimal.Decimal   `gorm:"type:decimal(15,2)" json:"theoretical_balance,omitempty"`
	BalanceDifference  *decimal.Decimal   `gorm:"type:decimal(15,2)" json:"balance_difference,omitempty"`
	Status             enum.SessionStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	IsHistorical       bool               `gorm:"not null;default:false" json:"is_historical"`
	OpenedByID         uuid.UUID          `gorm:"type:uuid;not null;column:opened_by" json:"opened_by"`
	ClosedByID         *uuid.UUID         `gorm:"type:uuid;column:closed_by" json:"closed_by,omitempty"`
	Notes              string             `gorm:"type:text" json:"notes,omitempty"`
	ClosedAt           *time.Time         `json:"closed_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	// Relationships
	Revenues []RevenueEntry `gorm:"foreignKey:SessionID" json:"revenues"`
	Expenses []ExpenseEntry `gorm:"foreignKey:SessionID" json:"expenses"`
}

// BeforeCreate generates a UUID before creating a new session
func (s *CashSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashSession model
func (CashSession) TableName() string {
	return "cash_sessions"
}

// IsOpen reports whether the session still accepts ledger entries.
func (s *CashSession) IsOpen() bool {
	return s.Status == enum.SessionOpen
}

// DayWindow returns the [00:00:00, 23:59:59.999] window of the session's
// calendar day, used to scope platform payments during reconciliation.
func (s *CashSession) DayWindow() (time.Time, time.Time) {
	y, m, d := s.SessionDate.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, s.SessionDate.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}
