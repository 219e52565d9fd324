package service

import (
	"testing"
	"time"

	"github.com/chopdesk/chopdesk-api/internal/domain/entity"
	"github.com/chopdesk/chopdesk-api/internal/domain/enum"
	"github.com/chopdesk/chopdesk-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerEnv struct {
	tenantID  uuid.UUID
	userID    uuid.UUID
	sessions  *fakeSessionRepo
	revenues  *fakeRevenueRepo
	expenses  *fakeExpenseRepo
	inventory *fakeInventoryRepo
	movements *fakeMovementRepo
	revSvc    *RevenueService
	expSvc    *ExpenseService
	session   *entity.CashSession
}

func newLedgerEnv(t *testing.T) *ledgerEnv {
	t.Helper()
	env := &ledgerEnv{
		tenantID:  uuid.New(),
		userID:    uuid.New(),
		sessions:  newFakeSessionRepo(),
		revenues:  &fakeRevenueRepo{},
		expenses:  &fakeExpenseRepo{},
		inventory: &fakeInventoryRepo{},
		movements: &fakeMovementRepo{},
	}
	tx := &fakeTxManager{}
	invSvc := NewInventoryService(env.inventory, env.movements, tx)
	env.revSvc = NewRevenueService(env.revenues, env.sessions, invSvc, tx)
	env.expSvc = NewExpenseService(env.expenses, env.sessions, invSvc, tx)

	env.session = &entity.CashSession{
		TenantID:       env.tenantID,
		SessionDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		OpeningBalance: dec("10000"),
		Status:         enum.SessionOpen,
		OpenedByID:     env.userID,
	}
	require.NoError(t, env.sessions.Create(testCtx(env.tenantID, env.userID), env.session))
	return env
}

func (e *ledgerEnv) addStock(t *testing.T, productRef uuid.UUID, quantity int) {
	t.Helper()
	require.NoError(t, e.inventory.Create(testCtx(e.tenantID, e.userID), &entity.InventoryItem{
		TenantID:   e.tenantID,
		ProductRef: productRef,
		Quantity:   quantity,
	}))
}

func TestRecordRevenueComputesTotalServerSide(t *testing.T) {
	env := newLedgerEnv(t)

	entry, err := env.revSvc.RecordRevenue(testCtx(env.tenantID, env.userID), &RecordRevenueInput{
		SessionID:        env.session.ID,
		Description:      "grilled chicken",
		Quantity:         2,
		UnitAmount:       dec("1500"),
		SettlementMethod: "cash",
		RevenueKind:      "good",
	})
	require.NoError(t, err)

	assert.True(t, entry.TotalAmount.Equal(dec("3000")))
	assert.Equal(t, enum.SettlementCash, entry.SettlementMethod)
	assert.Equal(t, env.userID, entry.RecordedByID)
	assert.Len(t, env.revenues.entries, 1)
}

func TestRecordRevenueUnknownSettlementMethod(t *testing.T) {
	env := newLedgerEnv(t)

	_, err := env.revSvc.RecordRevenue(testCtx(env.tenantID, env.userID), &RecordRevenueInput{
		SessionID:        env.session.ID,
		Description:      "mystery sale",
		Quantity:         1,
		UnitAmount:       dec("100"),
		SettlementMethod: "bitcoin",
		RevenueKind:      "good",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidDomainValue(err))
	assert.Empty(t, env.revenues.entries)
}

func TestRecordRevenueOnClosedSession(t *testing.T) {
	env := newLedgerEnv(t)
	stored := env.sessions.sessions[env.session.ID]
	stored.Status = enum.SessionClosed
	env.sessions.sessions[env.session.ID] = stored

	_, err := env.revSvc.RecordRevenue(testCtx(env.tenantID, env.userID), &RecordRevenueInput{
		SessionID:        env.session.ID,
		Description:      "late sale",
		Quantity:         1,
		UnitAmount:       dec("100"),
		SettlementMethod: "cash",
		RevenueKind:      "good",
	})
	assert.ErrorIs(t, err, apperror.ErrSessionNotOpen)
}

func TestRecordRevenueGoodDecrementsStock(t *testing.T) {
	env := newLedgerEnv(t)
	productRef := uuid.New()
	env.addStock(t, productRef, 10)

	entry, err := env.revSvc.RecordRevenue(testCtx(env.tenantID, env.userID), &RecordRevenueInput{
		SessionID:        env.session.ID,
		Description:      "bottled water",
		Quantity:         3,
		UnitAmount:       dec("500"),
		SettlementMethod: "cash",
		RevenueKind:      "good",
		ProductRef:       &productRef,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, env.inventory.items[0].Quantity)
	require.Len(t, env.movements.movements, 1)
	movement := env.movements.movements[0]
	assert.Equal(t, enum.MovementSaleManual, movement.MovementType)
	assert.Equal(t, -3, movement.QuantityDelta)
	assert.Equal(t, 10, movement.PreviousQuantity)
	assert.Equal(t, 7, movement.NewQuantity)
	require.NotNil(t, entry.StockMovementID)
	assert.Equal(t, movement.ID, *entry.StockMovementID)
}

func TestRecordRevenueServiceKindSkipsStock(t *testing.T) {
	env := newLedgerEnv(t)
	productRef := uuid.New()
	env.addStock(t, productRef, 10)

	entry, err := env.revSvc.RecordRevenue(testCtx(env.tenantID, env.userID), &RecordRevenueInput{
		SessionID:        env.session.ID,
		Description:      "delivery fee",
		Quantity:         1,
		UnitAmount:       dec("1000"),
		SettlementMethod: "mobile_money",
		RevenueKind:      "service",
		ProductRef:       &productRef,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, env.inventory.items[0].Quantity)
	assert.Empty(t, env.movements.movements)
	assert.Nil(t, entry.StockMovementID)
}

func TestRecordRevenueMissingProductLeavesNoEntry(t *testing.T) {
	env := newLedgerEnv(t)
	productRef := uuid.New() // never stocked

	_, err := env.revSvc.RecordRevenue(testCtx(env.tenantID, env.userID), &RecordRevenueInput{
		SessionID:        env.session.ID,
		Description:      "phantom product",
		Quantity:         1,
		UnitAmount:       dec("100"),
		SettlementMethod: "cash",
		RevenueKind:      "good",
		ProductRef:       &productRef,
	})
	assert.ErrorIs(t, err, apperror.ErrProductNotFound)
	assert.Empty(t, env.revenues.entries)
	assert.Empty(t, env.movements.movements)
}

func TestRecordRevenueValidation(t *testing.T) {
	env := newLedgerEnv(t)
	ctx := testCtx(env.tenantID, env.userID)

	_, err := env.revSvc.RecordRevenue(ctx, &RecordRevenueInput{
		SessionID:        env.session.ID,
		Description:      "",
		Quantity:         1,
		UnitAmount:       dec("100"),
		SettlementMethod: "cash",
		RevenueKind:      "good",
	})
	assert.Error(t, err)

	_, err = env.revSvc.RecordRevenue(ctx, &RecordRevenueInput{
		SessionID:        env.session.ID,
		Description:      "zero quantity",
		Quantity:         0,
		UnitAmount:       dec("100"),
		SettlementMethod: "cash",
		RevenueKind:      "good",
	})
	assert.Error(t, err)

	_, err = env.revSvc.RecordRevenue(ctx, &RecordRevenueInput{
		SessionID:        env.session.ID,
		Description:      "negative amount",
		Quantity:         1,
		UnitAmount:       dec("-5"),
		SettlementMethod: "cash",
		RevenueKind:      "good",
	})
	assert.Error(t, err)

	assert.Empty(t, env.revenues.entries)
}

func TestRecordRevenueSessionNotFound(t *testing.T) {
	env := newLedgerEnv(t)

	_, err := env.revSvc.RecordRevenue(testCtx(env.tenantID, env.userID), &RecordRevenueInput{
		SessionID:        uuid.New(),
		Description:      "orphan",
		Quantity:         1,
		UnitAmount:       dec("100"),
		SettlementMethod: "cash",
		RevenueKind:      "good",
	})
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}
