package handler

import (
	"github.com/chopdesk/chopdesk-api/internal/application/service"
	"github.com/chopdesk/chopdesk-api/internal/presentation/http/dto/request"
	"github.com/chopdesk/chopdesk-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerHandler handles revenue and expense entry HTTP requests
type LedgerHandler struct {
	revenueService *service.RevenueService
	expenseService *service.ExpenseService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(revenueService *service.RevenueService, expenseService *service.ExpenseService) *LedgerHandler {
	return &LedgerHandler{
		revenueService: revenueService,
		expenseService: expenseService,
	}
}

// RecordRevenue handles appending a revenue entry to a session
func (h *LedgerHandler) RecordRevenue(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.RecordRevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.revenueService.RecordRevenue(c.Request.Context(), &service.RecordRevenueInput{
		SessionID:        sessionID,
		Description:      req.Description,
		Quantity:         req.Quantity,
		UnitAmount:       req.UnitAmount,
		SettlementMethod: req.SettlementMethod,
		RevenueKind:      req.RevenueKind,
		ProductRef:       req.ProductRef,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Revenue recorded successfully", entry)
}

// ListRevenues handles listing a session's revenue entries
func (h *LedgerHandler) ListRevenues(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	entries, err := h.revenueService.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Revenue entries retrieved successfully", entries)
}

// RecordExpense handles appending an expense entry to a session
func (h *LedgerHandler) RecordExpense(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.expenseService.RecordExpense(c.Request.Context(), &service.RecordExpenseInput{
		SessionID:        sessionID,
		Description:      req.Description,
		Amount:           req.Amount,
		Category:         req.Category,
		SettlementMethod: req.SettlementMethod,
		ProductRef:       req.ProductRef,
		QuantityAdded:    req.QuantityAdded,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense recorded successfully", entry)
}

// ListExpenses handles listing a session's expense entries
func (h *LedgerHandler) ListExpenses(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	entries, err := h.expenseService.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense entries retrieved successfully", entries)
}
