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

type balanceEnv struct {
	tenantID uuid.UUID
	userID   uuid.UUID
	sessions *fakeSessionRepo
	revenues *fakeRevenueRepo
	expenses *fakeExpenseRepo
	payments *fakePaymentRepo
	svc      *BalanceService
}

func newBalanceEnv() *balanceEnv {
	env := &balanceEnv{
		tenantID: uuid.New(),
		userID:   uuid.New(),
		sessions: newFakeSessionRepo(),
		revenues: &fakeRevenueRepo{},
		expenses: &fakeExpenseRepo{},
		payments: &fakePaymentRepo{},
	}
	env.svc = NewBalanceService(env.sessions, env.revenues, env.expenses, env.payments)
	return env
}

func (e *balanceEnv) openSession(t *testing.T, opening string) *entity.CashSession {
	t.Helper()
	session := &entity.CashSession{
		TenantID:       e.tenantID,
		SessionDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		OpeningBalance: dec(opening),
		Status:         enum.SessionOpen,
		OpenedByID:     e.userID,
	}
	require.NoError(t, e.sessions.Create(testCtx(e.tenantID, e.userID), session))
	return session
}

func TestGetBalanceManualCashRevenue(t *testing.T) {
	env := newBalanceEnv()
	ctx := testCtx(env.tenantID, env.userID)
	session := env.openSession(t, "10000")

	require.NoError(t, env.revenues.Create(ctx, &entity.RevenueEntry{
		TenantID:         env.tenantID,
		SessionID:        session.ID,
		Description:      "grilled chicken",
		Quantity:         2,
		UnitAmount:       dec("1500"),
		TotalAmount:      dec("3000"),
		SettlementMethod: enum.SettlementCash,
		RevenueKind:      enum.RevenueGood,
		RecordedByID:     env.userID,
	}))

	report, err := env.svc.GetBalance(ctx, session.ID)
	require.NoError(t, err)

	assert.True(t, report.TheoreticalBalance.Equal(dec("13000")),
		"theoretical balance: %s", report.TheoreticalBalance)
	assert.True(t, report.TheoreticalCashBalance.Equal(dec("13000")))
	assert.True(t, report.ManualRevenueByMethod[enum.SettlementCash].Equal(dec("3000")))
	assert.True(t, report.CashIn.Equal(dec("3000")))
	assert.Nil(t, report.ClosingBalance)
	assert.Nil(t, report.BalanceDifference)
}

func TestGetBalanceWithExpense(t *testing.T) {
	env := newBalanceEnv()
	ctx := testCtx(env.tenantID, env.userID)
	session := env.openSession(t, "10000")

	require.NoError(t, env.revenues.Create(ctx, &entity.RevenueEntry{
		TenantID: env.tenantID, SessionID: session.ID,
		Quantity: 2, UnitAmount: dec("1500"), TotalAmount: dec("3000"),
		SettlementMethod: enum.SettlementCash, RevenueKind: enum.RevenueGood,
		RecordedByID: env.userID,
	}))
	require.NoError(t, env.expenses.Create(ctx, &entity.ExpenseEntry{
		TenantID: env.tenantID, SessionID: session.ID,
		Amount: dec("2000"), Category: enum.CategoryStockPurchase,
		SettlementMethod: enum.SettlementCash, RecordedByID: env.userID,
	}))

	report, err := env.svc.GetBalance(ctx, session.ID)
	require.NoError(t, err)

	assert.True(t, report.TheoreticalBalance.Equal(dec("11000")))
	assert.True(t, report.ExpenseByCategory[enum.CategoryStockPurchase].Equal(dec("2000")))
	assert.True(t, report.CashOut.Equal(dec("2000")))
}

func TestGetBalanceSeparatesCashFromOtherMethods(t *testing.T) {
	env := newBalanceEnv()
	ctx := testCtx(env.tenantID, env.userID)
	session := env.openSession(t, "5000")

	require.NoError(t, env.revenues.Create(ctx, &entity.RevenueEntry{
		TenantID: env.tenantID, SessionID: session.ID,
		Quantity: 1, UnitAmount: dec("4000"), TotalAmount: dec("4000"),
		SettlementMethod: enum.SettlementMobileMoney, RevenueKind: enum.RevenueService,
		RecordedByID: env.userID,
	}))

	report, err := env.svc.GetBalance(ctx, session.ID)
	require.NoError(t, err)

	// Mobile money counts toward the full theoretical balance, never the drawer.
	assert.True(t, report.TheoreticalBalance.Equal(dec("9000")))
	assert.True(t, report.TheoreticalCashBalance.Equal(dec("5000")))
	assert.True(t, report.CashIn.IsZero())
}

func TestGetBalanceIncludesPlatformPaymentsInDayWindow(t *testing.T) {
	env := newBalanceEnv()
	ctx := testCtx(env.tenantID, env.userID)
	session := env.openSession(t, "0")

	env.payments.payments = []entity.PlatformPayment{
		{
			TenantID:         env.tenantID,
			Amount:           dec("2500"),
			SettlementMethod: enum.SettlementCard,
			ConfirmedAt:      time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC),
		},
		{
			// Previous day, outside the session window.
			TenantID:         env.tenantID,
			Amount:           dec("9999"),
			SettlementMethod: enum.SettlementCard,
			ConfirmedAt:      time.Date(2024, 1, 14, 23, 0, 0, 0, time.UTC),
		},
	}

	report, err := env.svc.GetBalance(ctx, session.ID)
	require.NoError(t, err)

	assert.True(t, report.PlatformRevenueByMethod[enum.SettlementCard].Equal(dec("2500")))
	assert.True(t, report.TotalRevenue.Equal(dec("2500")))
	assert.True(t, report.TheoreticalBalance.Equal(dec("2500")))
}

func TestGetBalanceRecomputeIsIdempotent(t *testing.T) {
	env := newBalanceEnv()
	ctx := testCtx(env.tenantID, env.userID)
	session := env.openSession(t, "10000")

	require.NoError(t, env.revenues.Create(ctx, &entity.RevenueEntry{
		TenantID: env.tenantID, SessionID: session.ID,
		Quantity: 3, UnitAmount: dec("700"), TotalAmount: dec("2100"),
		SettlementMethod: enum.SettlementCash, RevenueKind: enum.RevenueGood,
		RecordedByID: env.userID,
	}))

	first, err := env.svc.GetBalance(ctx, session.ID)
	require.NoError(t, err)
	second, err := env.svc.GetBalance(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetBalanceSessionNotFound(t *testing.T) {
	env := newBalanceEnv()
	ctx := testCtx(env.tenantID, env.userID)

	_, err := env.svc.GetBalance(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestGetBalanceClosedSessionReportsDifference(t *testing.T) {
	env := newBalanceEnv()
	ctx := testCtx(env.tenantID, env.userID)
	session := env.openSession(t, "10000")

	closing := dec("10500")
	stored := env.sessions.sessions[session.ID]
	stored.Status = enum.SessionClosed
	stored.ClosingBalance = &closing
	env.sessions.sessions[session.ID] = stored

	require.NoError(t, env.expenses.Create(ctx, &entity.ExpenseEntry{
		TenantID: env.tenantID, SessionID: session.ID,
		Amount: dec("2000"), Category: enum.CategoryOther,
		SettlementMethod: enum.SettlementCash, RecordedByID: env.userID,
	}))
	require.NoError(t, env.revenues.Create(ctx, &entity.RevenueEntry{
		TenantID: env.tenantID, SessionID: session.ID,
		Quantity: 2, UnitAmount: dec("1500"), TotalAmount: dec("3000"),
		SettlementMethod: enum.SettlementCash, RevenueKind: enum.RevenueGood,
		RecordedByID: env.userID,
	}))

	report, err := env.svc.GetBalance(ctx, session.ID)
	require.NoError(t, err)

	require.NotNil(t, report.BalanceDifference)
	assert.True(t, report.BalanceDifference.Equal(dec("-500")),
		"difference: %s", report.BalanceDifference)
}
