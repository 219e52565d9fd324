package service

import (
	"context"

	"github.com/chopdesk/chopdesk-api/internal/domain/entity"
	"github.com/chopdesk/chopdesk-api/internal/domain/enum"
	"github.com/chopdesk/chopdesk-api/internal/domain/repository"
	infraRepo "github.com/chopdesk/chopdesk-api/internal/infrastructure/repository"
	"github.com/chopdesk/chopdesk-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevenueService records manually-entered sales against an open session
type RevenueService struct {
	revenueRepo repository.RevenueRepository
	sessionRepo repository.SessionRepository
	inventory   *InventoryService
	txManager   repository.TxManager
}

// NewRevenueService creates a new revenue service
func NewRevenueService(
	revenueRepo repository.RevenueRepository,
	sessionRepo repository.SessionRepository,
	inventory *InventoryService,
	txManager repository.TxManager,
) *RevenueService {
	return &RevenueService{
		revenueRepo: revenueRepo,
		sessionRepo: sessionRepo,
		inventory:   inventory,
		txManager:   txManager,
	}
}

// RecordRevenueInput represents the record revenue input. SettlementMethod
// and RevenueKind arrive as raw tags from outside the trusted boundary and
// are parsed before anything is written.
type RecordRevenueInput struct {
	SessionID        uuid.UUID
	Description      string
	Quantity         int
	UnitAmount       decimal.Decimal
	SettlementMethod string
	RevenueKind      string
	ProductRef       *uuid.UUID
}

// RecordRevenue appends a revenue entry to an open session. For a good sold
// with a product reference, stock is decremented and the movement linked in
// the same transaction as the entry; a failure in either leaves no trace of
// the call. The total is always computed server-side.
func (s *RevenueService) RecordRevenue(ctx context.Context, input *RecordRevenueInput) (*entity.RevenueEntry, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}
	actorID, ok := infraRepo.GetUserID(ctx)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	method, err := enum.ParseSettlementMethod(input.SettlementMethod)
	if err != nil {
		return nil, apperror.NewInvalidDomainValueError("settlement_method", input.SettlementMethod)
	}
	kind, err := enum.ParseRevenueKind(input.RevenueKind)
	if err != nil {
		return nil, apperror.NewInvalidDomainValueError("revenue_kind", input.RevenueKind)
	}

	if input.Description == "" {
		return nil, apperror.NewBadRequestError("Description is required")
	}
	if input.Quantity <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be a positive integer")
	}
	if input.UnitAmount.IsNegative() {
		return nil, apperror.NewBadRequestError("Unit amount must not be negative")
	}

	session, err := s.sessionRepo.GetByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrSessionNotFound
	}
	if !session.IsOpen() {
		return nil, apperror.ErrSessionNotOpen
	}

	entry := &entity.RevenueEntry{
		TenantID:         tenantID,
		SessionID:        session.ID,
		Description:      input.Description,
		Quantity:         input.Quantity,
		UnitAmount:       input.UnitAmount,
		TotalAmount:      input.UnitAmount.Mul(decimal.NewFromInt(int64(input.Quantity))),
		SettlementMethod: method,
		RevenueKind:      kind,
		ProductRef:       input.ProductRef,
		RecordedByID:     actorID,
	}

	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if kind == enum.RevenueGood && input.ProductRef != nil {
			movement, err := s.inventory.applyLocked(txCtx, &ApplyMovementInput{
				ProductRef:   *input.ProductRef,
				Delta:        -input.Quantity,
				ActorID:      actorID,
				MovementType: enum.MovementSaleManual,
				Reason:       "manual sale: " + input.Description,
			})
			if err != nil {
				return err
			}
			entry.StockMovementID = &movement.ID
		}
		return s.revenueRepo.Create(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// ListBySession returns the revenue entries recorded against a session.
func (s *RevenueService) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.RevenueEntry, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrSessionNotFound
	}
	return s.revenueRepo.ListBySession(ctx, sessionID)
}
