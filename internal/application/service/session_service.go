package service

import (
	"context"
	"errors"
	"time"

	"github.com/chopdesk/chopdesk-api/internal/domain/entity"
	"github.com/chopdesk/chopdesk-api/internal/domain/enum"
	"github.com/chopdesk/chopdesk-api/internal/domain/repository"
	infraRepo "github.com/chopdesk/chopdesk-api/internal/infrastructure/repository"
	"github.com/chopdesk/chopdesk-api/pkg/apperror"
	"github.com/chopdesk/chopdesk-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SessionService manages the cash session lifecycle
type SessionService struct {
	sessionRepo repository.SessionRepository
	balance     *BalanceService
	txManager   repository.TxManager
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionRepo repository.SessionRepository,
	balance *BalanceService,
	txManager repository.TxManager,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		balance:     balance,
		txManager:   txManager,
	}
}

// OpenSessionInput represents the open session input
type OpenSessionInput struct {
	SessionDate    time.Time
	OpeningBalance decimal.Decimal
	Notes          string
}

// CloseSessionInput represents the close session input
type CloseSessionInput struct {
	SessionID      uuid.UUID
	ClosingBalance decimal.Decimal
	Notes          string
}

// OpenSession opens a cash session for a calendar day. At most one open
// session may exist per tenant and day; a session opened for a past day is
// flagged historical (back-filled books) but behaves identically.
func (s *SessionService) OpenSession(ctx context.Context, input *OpenSessionInput) (*entity.CashSession, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}
	actorID, ok := infraRepo.GetUserID(ctx)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	if input.OpeningBalance.IsNegative() {
		return nil, apperror.NewBadRequestError("Opening balance must not be negative")
	}
	if input.SessionDate.IsZero() {
		return nil, apperror.NewBadRequestError("Session date is required")
	}

	existing, err := s.sessionRepo.FindOpenByDate(ctx, input.SessionDate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrSessionAlreadyOpen
	}

	today := time.Now().In(input.SessionDate.Location()).Format("2006-01-02")
	isHistorical := input.SessionDate.Format("2006-01-02") < today

	session := &entity.CashSession{
		TenantID:       tenantID,
		SessionDate:    input.SessionDate,
		OpeningBalance: input.OpeningBalance,
		Status:         enum.SessionOpen,
		IsHistorical:   isHistorical,
		OpenedByID:     actorID,
		Notes:          input.Notes,
		Revenues:       []entity.RevenueEntry{},
		Expenses:       []entity.ExpenseEntry{},
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		// A concurrent open that slipped past FindOpenByDate lands on the
		// partial unique index over open sessions.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrSessionAlreadyOpen
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id":     tenantID,
		"session_id":    session.ID,
		"session_date":  input.SessionDate.Format("2006-01-02"),
		"is_historical": isHistorical,
	}).Info("cash session opened")

	return session, nil
}

// CloseSession reconciles and closes a session. The theoretical balance is
// recomputed from the ledger at this moment, the counted closing balance is
// compared against it, and all closing columns land in one guarded update so
// a racing second close loses cleanly.
func (s *SessionService) CloseSession(ctx context.Context, input *CloseSessionInput) (*entity.CashSession, error) {
	if _, ok := infraRepo.GetTenantID(ctx); !ok {
		return nil, apperror.ErrUnauthorized
	}
	actorID, ok := infraRepo.GetUserID(ctx)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	if input.ClosingBalance.IsNegative() {
		return nil, apperror.NewBadRequestError("Closing balance must not be negative")
	}

	session, err := s.sessionRepo.GetByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrSessionNotFound
	}
	if !session.IsOpen() {
		return nil, apperror.ErrSessionAlreadyClosed
	}

	report, err := s.balance.computeForSession(ctx, session)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	closing := input.ClosingBalance
	theoretical := report.TheoreticalBalance
	difference := closing.Sub(theoretical)

	session.ClosingBalance = &closing
	session.TheoreticalBalance = &theoretical
	session.BalanceDifference = &difference
	session.Status = enum.SessionClosed
	session.ClosedByID = &actorID
	session.ClosedAt = &now
	if input.Notes != "" {
		session.Notes = input.Notes
	}

	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		return s.sessionRepo.Close(txCtx, session)
	})
	if err != nil {
		// ErrRecordNotFound means the guarded update matched no open row, so
		// another close won. Anything else is a store failure and the session
		// is still open; the caller must see the real error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrSessionAlreadyClosed
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"session_id":          session.ID,
		"closing_balance":     closing.String(),
		"theoretical_balance": theoretical.String(),
		"balance_difference":  difference.String(),
	}).Info("cash session closed")

	return session, nil
}

// GetSession returns a session with its ledger entries loaded.
func (s *SessionService) GetSession(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	session, err := s.sessionRepo.GetWithEntries(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrSessionNotFound
	}
	return session, nil
}

// ListSessions returns the tenant's sessions, newest first.
func (s *SessionService) ListSessions(ctx context.Context, params *repository.SessionFilterParams) (*pagination.PaginatedResult[entity.CashSession], error) {
	if params.Status != "" {
		if _, err := enum.ParseSessionStatus(params.Status); err != nil {
			return nil, apperror.NewInvalidDomainValueError("status", params.Status)
		}
	}

	sessions, total, err := s.sessionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sessions, pag), nil
}
