package repository

import (
	"context"
	"time"

	"github.com/chopdesk/chopdesk-api/internal/domain/entity"
	"github.com/chopdesk/chopdesk-api/pkg/pagination"
	"github.com/google/uuid"
)

// SessionRepository defines the interface for cash session data operations
type SessionRepository interface {
	Create(ctx context.Context, session *entity.CashSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashSession, error)
	GetWithEntries(ctx context.Context, id uuid.UUID) (*entity.CashSession, error)
	// FindOpenByDate returns the open session for the tenant's calendar day,
	// or nil if none exists.
	FindOpenByDate(ctx context.Context, sessionDate time.Time) (*entity.CashSession, error)
	// Close persists the closing columns and flips the status in one update.
	Close(ctx context.Context, session *entity.CashSession) error
	List(ctx context.Context, params *SessionFilterParams) ([]entity.CashSession, int64, error)
}

// SessionFilterParams contains filtering parameters for session queries
type SessionFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     string
	StartDate  *time.Time
	EndDate    *time.Time
}
