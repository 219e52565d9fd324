package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpenSessionRequest represents an open cash session request. Dates are
// calendar days in YYYY-MM-DD form.
type OpenSessionRequest struct {
	SessionDate    string          `json:"session_date" binding:"required"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Notes          string          `json:"notes"`
}

// CloseSessionRequest represents a close cash session request. The closing
// balance is the physically counted drawer amount.
type CloseSessionRequest struct {
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Notes          string          `json:"notes"`
}

// RecordRevenueRequest represents a record revenue request. The total is
// computed server-side from quantity and unit amount; any client-sent total
// is ignored.
type RecordRevenueRequest struct {
	Description      string          `json:"description" binding:"required"`
	Quantity         int             `json:"quantity" binding:"required"`
	UnitAmount       decimal.Decimal `json:"unit_amount"`
	SettlementMethod string          `json:"settlement_method" binding:"required"`
	RevenueKind      string          `json:"revenue_kind" binding:"required"`
	ProductRef       *uuid.UUID      `json:"product_ref"`
}

// RecordExpenseRequest represents a record expense request. ProductRef and
// QuantityAdded together turn a stock purchase into an inventory increment.
type RecordExpenseRequest struct {
	Description      string          `json:"description" binding:"required"`
	Amount           decimal.Decimal `json:"amount"`
	Category         string          `json:"category" binding:"required"`
	SettlementMethod string          `json:"settlement_method" binding:"required"`
	ProductRef       *uuid.UUID      `json:"product_ref"`
	QuantityAdded    *int            `json:"quantity_added"`
}

// StockAdjustmentRequest represents a manual stock adjustment request
type StockAdjustmentRequest struct {
	ProductRef uuid.UUID `json:"product_ref" binding:"required"`
	Delta      int       `json:"delta" binding:"required"`
	Reason     string    `json:"reason" binding:"required"`
}
