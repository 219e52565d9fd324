package service

import (
	"context"
	"time"

	"github.com/chopdesk/chopdesk-api/internal/domain/entity"
	"github.com/chopdesk/chopdesk-api/internal/domain/enum"
	"github.com/chopdesk/chopdesk-api/internal/domain/repository"
	infraRepo "github.com/chopdesk/chopdesk-api/internal/infrastructure/repository"
	"github.com/chopdesk/chopdesk-api/pkg/apperror"
	"github.com/chopdesk/chopdesk-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// retryBackoff is the pause before the single retry of a failed inventory
// transaction (lock contention, transient store errors).
const retryBackoff = 50 * time.Millisecond

// InventoryService records inventory movements. Every quantity change goes
// through ApplyMovement: the quantity update and the audit movement are
// written in one transaction, with the inventory row locked for the
// duration so concurrent movements against the same product serialize.
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	movementRepo  repository.MovementRepository
	txManager     repository.TxManager
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	movementRepo repository.MovementRepository,
	txManager repository.TxManager,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		movementRepo:  movementRepo,
		txManager:     txManager,
	}
}

// ApplyMovementInput describes one requested inventory quantity change
type ApplyMovementInput struct {
	ProductRef   uuid.UUID
	Delta        int
	ActorID      uuid.UUID
	MovementType enum.MovementType
	Reason       string
}

// ApplyMovement applies a signed quantity delta and appends the audit
// movement as one atomic unit. Transient transaction failures are retried
// once with backoff; domain errors are not.
func (s *InventoryService) ApplyMovement(ctx context.Context, input *ApplyMovementInput) (*entity.StockMovement, error) {
	var movement *entity.StockMovement

	run := func() error {
		return s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
			m, err := s.applyLocked(txCtx, input)
			if err != nil {
				return err
			}
			movement = m
			return nil
		})
	}

	err := run()
	if err != nil && !apperror.IsAppError(err) {
		logrus.WithError(err).WithField("product_ref", input.ProductRef).
			Warn("inventory movement failed, retrying once")
		time.Sleep(retryBackoff)
		err = run()
	}
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// applyLocked performs the read-modify-write under the caller's transaction.
// The revenue and expense ledgers call this directly so the movement joins
// the same transaction as the ledger entry.
func (s *InventoryService) applyLocked(ctx context.Context, input *ApplyMovementInput) (*entity.StockMovement, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	item, err := s.inventoryRepo.GetForUpdate(ctx, input.ProductRef)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.ErrProductNotFound
	}

	// Quantity never goes negative: oversized decrements clamp at zero and
	// the movement records the delta actually applied.
	newQuantity := item.Quantity + input.Delta
	if newQuantity < 0 {
		newQuantity = 0
	}
	appliedDelta := newQuantity - item.Quantity

	if err := s.inventoryRepo.UpdateQuantity(ctx, item.ID, newQuantity); err != nil {
		return nil, err
	}

	movement := &entity.StockMovement{
		TenantID:         tenantID,
		ProductRef:       input.ProductRef,
		ActorID:          input.ActorID,
		MovementType:     input.MovementType,
		QuantityDelta:    appliedDelta,
		PreviousQuantity: item.Quantity,
		NewQuantity:      newQuantity,
		Reason:           input.Reason,
	}
	if err := s.movementRepo.Create(ctx, movement); err != nil {
		return nil, err
	}

	return movement, nil
}

// ListMovements returns the audit trail, optionally filtered by product
func (s *InventoryService) ListMovements(ctx context.Context, params *repository.MovementFilterParams) (*pagination.PaginatedResult[entity.StockMovement], error) {
	movements, total, err := s.movementRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(movements, pag), nil
}
