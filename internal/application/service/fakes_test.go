package service

import (
	"context"
	"errors"
	"time"

	"github.com/chopdesk/chopdesk-api/internal/domain/entity"
	"github.com/chopdesk/chopdesk-api/internal/domain/enum"
	"github.com/chopdesk/chopdesk-api/internal/domain/repository"
	infraRepo "github.com/chopdesk/chopdesk-api/internal/infrastructure/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory fakes implementing the domain repository interfaces. They store
// entities by value so callers never observe writes that did not go through
// the repository.

func testCtx(tenantID, userID uuid.UUID) context.Context {
	ctx := infraRepo.WithTenant(context.Background(), tenantID)
	return infraRepo.WithUser(ctx, userID)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeTxManager struct{}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// flakyTxManager fails the transaction itself a set number of times before
// behaving like fakeTxManager. It counts every attempt, so tests can assert
// how often a caller retried.
type flakyTxManager struct {
	failures int
	calls    int
}

func (f *flakyTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return errors.New("could not serialize access due to concurrent update")
	}
	return fn(ctx)
}

type fakeSessionRepo struct {
	sessions  map[uuid.UUID]entity.CashSession
	createErr error
	closeErr  error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]entity.CashSession)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.CashSession) error {
	if f.createErr != nil {
		return f.createErr
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	f.sessions[session.ID] = *session
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSessionRepo) GetWithEntries(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeSessionRepo) FindOpenByDate(ctx context.Context, sessionDate time.Time) (*entity.CashSession, error) {
	want := sessionDate.Format("2006-01-02")
	for _, s := range f.sessions {
		if s.Status == enum.SessionOpen && s.SessionDate.Format("2006-01-02") == want {
			found := s
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) Close(ctx context.Context, session *entity.CashSession) error {
	if f.closeErr != nil {
		return f.closeErr
	}
	stored, ok := f.sessions[session.ID]
	if !ok || stored.Status != enum.SessionOpen {
		return gorm.ErrRecordNotFound
	}
	f.sessions[session.ID] = *session
	return nil
}

func (f *fakeSessionRepo) List(ctx context.Context, params *repository.SessionFilterParams) ([]entity.CashSession, int64, error) {
	out := make([]entity.CashSession, 0, len(f.sessions))
	for _, s := range f.sessions {
		if params.Status != "" && string(s.Status) != params.Status {
			continue
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

type fakeRevenueRepo struct {
	entries []entity.RevenueEntry
}

func (f *fakeRevenueRepo) Create(ctx context.Context, entry *entity.RevenueEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeRevenueRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.RevenueEntry, error) {
	var out []entity.RevenueEntry
	for _, e := range f.entries {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeExpenseRepo struct {
	entries []entity.ExpenseEntry
}

func (f *fakeExpenseRepo) Create(ctx context.Context, entry *entity.ExpenseEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeExpenseRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.ExpenseEntry, error) {
	var out []entity.ExpenseEntry
	for _, e := range f.entries {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeInventoryRepo struct {
	items []entity.InventoryItem
}

func (f *fakeInventoryRepo) GetByProductRef(ctx context.Context, productRef uuid.UUID) (*entity.InventoryItem, error) {
	for _, item := range f.items {
		if item.ProductRef == productRef {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeInventoryRepo) GetForUpdate(ctx context.Context, productRef uuid.UUID) (*entity.InventoryItem, error) {
	return f.GetByProductRef(ctx, productRef)
}

func (f *fakeInventoryRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Quantity = quantity
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeInventoryRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.items = append(f.items, *item)
	return nil
}

type fakeMovementRepo struct {
	movements []entity.StockMovement
}

func (f *fakeMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}
	f.movements = append(f.movements, *movement)
	return nil
}

func (f *fakeMovementRepo) List(ctx context.Context, params *repository.MovementFilterParams) ([]entity.StockMovement, int64, error) {
	var out []entity.StockMovement
	for _, m := range f.movements {
		if params.ProductRef != nil && m.ProductRef != *params.ProductRef {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

type fakePaymentRepo struct {
	payments []entity.PlatformPayment
}

func (f *fakePaymentRepo) ListConfirmed(ctx context.Context, from, to time.Time) ([]entity.PlatformPayment, error) {
	var out []entity.PlatformPayment
	for _, p := range f.payments {
		if p.ConfirmedAt.Before(from) || p.ConfirmedAt.After(to) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

type fakeTenantRepo struct {
	tenants map[uuid.UUID]entity.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: make(map[uuid.UUID]entity.Tenant)}
}

func (f *fakeTenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error {
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}
	f.tenants[tenant.ID] = *tenant
	return nil
}

func (f *fakeTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeTenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	for _, t := range f.tenants {
		if t.Slug == slug {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}
