package handler

import (
	"strconv"

	"github.com/chopdesk/chopdesk-api/internal/application/service"
	"github.com/chopdesk/chopdesk-api/internal/domain/enum"
	"github.com/chopdesk/chopdesk-api/internal/domain/repository"
	"github.com/chopdesk/chopdesk-api/internal/presentation/http/dto/request"
	"github.com/chopdesk/chopdesk-api/internal/presentation/http/dto/response"
	"github.com/chopdesk/chopdesk-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MovementHandler handles stock movement HTTP requests
type MovementHandler struct {
	inventoryService *service.InventoryService
}

// NewMovementHandler creates a new movement handler
func NewMovementHandler(inventoryService *service.InventoryService) *MovementHandler {
	return &MovementHandler{inventoryService: inventoryService}
}

// Adjust handles a manual stock adjustment
func (h *MovementHandler) Adjust(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	movement, err := h.inventoryService.ApplyMovement(c.Request.Context(), &service.ApplyMovementInput{
		ProductRef:   req.ProductRef,
		Delta:        req.Delta,
		ActorID:      *userID,
		MovementType: enum.MovementAdjustment,
		Reason:       req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock adjustment recorded successfully", movement)
}

// List handles listing the stock movement audit trail
func (h *MovementHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.MovementFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if productRefStr := c.Query("product_ref"); productRefStr != "" {
		if productRef, err := uuid.Parse(productRefStr); err == nil {
			params.ProductRef = &productRef
		}
	}

	result, err := h.inventoryService.ListMovements(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stock movements retrieved successfully", result)
}
