package repository

import (
	"context"
	"errors"
	"time"

	"github.com/chopdesk/chopdesk-api/internal/domain/entity"
	"github.com/chopdesk/chopdesk-api/internal/domain/enum"
	domainRepo "github.com/chopdesk/chopdesk-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionRepository struct {
	base *gorm.DB
}

// NewSessionRepository creates a new cash session repository
func NewSessionRepository(db *gorm.DB) domainRepo.SessionRepository {
	return &sessionRepository{base: db}
}

func (r *sessionRepository) db(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.base).WithContext(ctx)
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.CashSession) error {
	return r.db(ctx).Create(session).Error
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	var session entity.CashSession
	err := r.db(ctx).Scopes(TenantScope(ctx)).
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) GetWithEntries(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	var session entity.CashSession
	err := r.db(ctx).Scopes(TenantScope(ctx)).
		Preload("Revenues").Preload("Expenses").
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) FindOpenByDate(ctx context.Context, sessionDate time.Time) (*entity.CashSession, error) {
	var session entity.CashSession
	err := r.db(ctx).Scopes(TenantScope(ctx)).
		Where("session_date = ? AND status = ?", sessionDate.Format("2006-01-02"), enum.SessionOpen).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

// Close writes the closing columns and flips the status in a single UPDATE
// guarded on the current status, so two concurrent closers cannot both win.
func (r *sessionRepository) Close(ctx context.Context, session *entity.CashSession) error {
	result := r.db(ctx).Model(&entity.CashSession{}).
		Scopes(TenantScope(ctx)).
		Where("id = ? AND status = ?", session.ID, enum.SessionOpen).
		Updates(map[string]interface{}{
			"closing_balance":     session.ClosingBalance,
			"theoretical_balance": session.TheoreticalBalance,
			"balance_difference":  session.BalanceDifference,
			"status":              enum.SessionClosed,
			"closed_by":           session.ClosedByID,
			"closed_at":           session.ClosedAt,
			"notes":               session.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sessionRepository) List(ctx context.Context, params *domainRepo.SessionFilterParams) ([]entity.CashSession, int64, error) {
	var sessions []entity.CashSession
	var total int64

	query := r.db(ctx).Model(&entity.CashSession{}).Scopes(TenantScope(ctx))

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.StartDate != nil {
		query = query.Where("session_date >= ?", params.StartDate.Format("2006-01-02"))
	}
	if params.EndDate != nil {
		query = query.Where("session_date <= ?", params.EndDate.Format("2006-01-02"))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("session_date DESC").
		Find(&sessions).Error

	return sessions, total, err
}
