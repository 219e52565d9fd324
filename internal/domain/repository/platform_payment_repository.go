package repository

import (
	"context"
	"time"

	"github.com/chopdesk/chopdesk-api/internal/domain/entity"
)

// PlatformPaymentRepository reads confirmed payments owned by the ordering
// module. The reconciliation engine never writes through this interface.
type PlatformPaymentRepository interface {
	ListConfirmed(ctx context.Context, from, to time.Time) ([]entity.PlatformPayment, error)
}
