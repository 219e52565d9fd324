package handler

import (
	"strconv"
	"time"

	"github.com/chopdesk/chopdesk-api/internal/application/service"
	"github.com/chopdesk/chopdesk-api/internal/domain/repository"
	"github.com/chopdesk/chopdesk-api/internal/presentation/http/dto/request"
	"github.com/chopdesk/chopdesk-api/internal/presentation/http/dto/response"
	"github.com/chopdesk/chopdesk-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHandler handles cash session HTTP requests
type SessionHandler struct {
	sessionService *service.SessionService
	balanceService *service.BalanceService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService, balanceService *service.BalanceService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		balanceService: balanceService,
	}
}

// Open handles opening a cash session
func (h *SessionHandler) Open(c *gin.Context) {
	var req request.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sessionDate, err := time.Parse("2006-01-02", req.SessionDate)
	if err != nil {
		response.BadRequest(c, "Invalid session date, expected YYYY-MM-DD")
		return
	}

	session, err := h.sessionService.OpenSession(c.Request.Context(), &service.OpenSessionInput{
		SessionDate:    sessionDate,
		OpeningBalance: req.OpeningBalance,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash session opened successfully", session)
}

// List handles listing cash sessions
func (h *SessionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.SessionFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Status: c.Query("status"),
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.sessionService.ListSessions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Cash sessions retrieved successfully", result)
}

// Get handles getting a single session with its ledger entries
func (h *SessionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.sessionService.GetSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash session retrieved successfully", session)
}

// Close handles closing a cash session
func (h *SessionHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.sessionService.CloseSession(c.Request.Context(), &service.CloseSessionInput{
		SessionID:      id,
		ClosingBalance: req.ClosingBalance,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash session closed successfully", session)
}

// GetBalance handles the reconciliation report for a session
func (h *SessionHandler) GetBalance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	report, err := h.balanceService.GetBalance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Balance computed successfully", report)
}
