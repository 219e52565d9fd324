package service

import (
	"context"
	"time"

	"github.com/chopdesk/chopdesk-api/internal/domain/entity"
	"github.com/chopdesk/chopdesk-api/internal/domain/enum"
	"github.com/chopdesk/chopdesk-api/internal/domain/repository"
	"github.com/chopdesk/chopdesk-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceService recomputes a session's theoretical position from the
// ledger on every request. Nothing is cached or maintained incrementally:
// the entries and the day's platform payments are the only source of truth,
// so the same session always reconciles to the same report.
type BalanceService struct {
	sessionRepo repository.SessionRepository
	revenueRepo repository.RevenueRepository
	expenseRepo repository.ExpenseRepository
	paymentRepo repository.PlatformPaymentRepository
}

// NewBalanceService creates a new balance service
func NewBalanceService(
	sessionRepo repository.SessionRepository,
	revenueRepo repository.RevenueRepository,
	expenseRepo repository.ExpenseRepository,
	paymentRepo repository.PlatformPaymentRepository,
) *BalanceService {
	return &BalanceService{
		sessionRepo: sessionRepo,
		revenueRepo: revenueRepo,
		expenseRepo: expenseRepo,
		paymentRepo: paymentRepo,
	}
}

// BalanceReport is the full reconciliation of one session. The per-method
// maps carry a bucket for every known settlement method, zero-valued when
// nothing settled through it.
type BalanceReport struct {
	SessionID   uuid.UUID          `json:"session_id"`
	SessionDate time.Time          `json:"session_date"`
	Status      enum.SessionStatus `json:"status"`

	OpeningBalance decimal.Decimal `json:"opening_balance"`

	ManualRevenueByMethod   map[enum.SettlementMethod]decimal.Decimal `json:"manual_revenue_by_method"`
	PlatformRevenueByMethod map[enum.SettlementMethod]decimal.Decimal `json:"platform_revenue_by_method"`
	ExpenseByMethod         map[enum.SettlementMethod]decimal.Decimal `json:"expense_by_method"`
	ExpenseByCategory       map[enum.ExpenseCategory]decimal.Decimal  `json:"expense_by_category"`

	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalExpense decimal.Decimal `json:"total_expense"`

	CashIn  decimal.Decimal `json:"cash_in"`
	CashOut decimal.Decimal `json:"cash_out"`

	// TheoreticalBalance sums all settlement methods; TheoreticalCashBalance
	// restricts the same computation to physical cash, which is what a
	// drawer count can actually be compared against.
	TheoreticalBalance     decimal.Decimal `json:"theoretical_balance"`
	TheoreticalCashBalance decimal.Decimal `json:"theoretical_cash_balance"`

	ClosingBalance    *decimal.Decimal `json:"closing_balance,omitempty"`
	BalanceDifference *decimal.Decimal `json:"balance_difference,omitempty"`
}

// GetBalance recomputes the reconciliation report for a session.
func (s *BalanceService) GetBalance(ctx context.Context, sessionID uuid.UUID) (*BalanceReport, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrSessionNotFound
	}
	return s.computeForSession(ctx, session)
}

// computeForSession builds the report from the session's ledger entries and
// the day's confirmed platform payments. Also used by the close path, where
// the caller already holds the session.
func (s *BalanceService) computeForSession(ctx context.Context, session *entity.CashSession) (*BalanceReport, error) {
	revenues, err := s.revenueRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	from, to := session.DayWindow()
	payments, err := s.paymentRepo.ListConfirmed(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &BalanceReport{
		SessionID:               session.ID,
		SessionDate:             session.SessionDate,
		Status:                  session.Status,
		OpeningBalance:          session.OpeningBalance,
		ManualRevenueByMethod:   zeroMethodBuckets(),
		PlatformRevenueByMethod: zeroMethodBuckets(),
		ExpenseByMethod:         zeroMethodBuckets(),
		ExpenseByCategory:       zeroCategoryBuckets(),
	}

	for _, rev := range revenues {
		report.ManualRevenueByMethod[rev.SettlementMethod] =
			report.ManualRevenueByMethod[rev.SettlementMethod].Add(rev.TotalAmount)
		report.TotalRevenue = report.TotalRevenue.Add(rev.TotalAmount)
		if rev.SettlementMethod.IsPhysicalCash() {
			report.CashIn = report.CashIn.Add(rev.TotalAmount)
		}
	}
	for _, pay := range payments {
		report.PlatformRevenueByMethod[pay.SettlementMethod] =
			report.PlatformRevenueByMethod[pay.SettlementMethod].Add(pay.Amount)
		report.TotalRevenue = report.TotalRevenue.Add(pay.Amount)
		if pay.SettlementMethod.IsPhysicalCash() {
			report.CashIn = report.CashIn.Add(pay.Amount)
		}
	}
	for _, exp := range expenses {
		report.ExpenseByMethod[exp.SettlementMethod] =
			report.ExpenseByMethod[exp.SettlementMethod].Add(exp.Amount)
		report.ExpenseByCategory[exp.Category] =
			report.ExpenseByCategory[exp.Category].Add(exp.Amount)
		report.TotalExpense = report.TotalExpense.Add(exp.Amount)
		if exp.SettlementMethod.IsPhysicalCash() {
			report.CashOut = report.CashOut.Add(exp.Amount)
		}
	}

	report.TheoreticalBalance = session.OpeningBalance.
		Add(report.TotalRevenue).
		Sub(report.TotalExpense)
	report.TheoreticalCashBalance = session.OpeningBalance.
		Add(report.CashIn).
		Sub(report.CashOut)

	if session.ClosingBalance != nil {
		closing := *session.ClosingBalance
		diff := closing.Sub(report.TheoreticalBalance)
		report.ClosingBalance = &closing
		report.BalanceDifference = &diff
	}

	return report, nil
}

func zeroMethodBuckets() map[enum.SettlementMethod]decimal.Decimal {
	buckets := make(map[enum.SettlementMethod]decimal.Decimal, len(enum.SettlementMethods()))
	for _, m := range enum.SettlementMethods() {
		buckets[m] = decimal.Zero
	}
	return buckets
}

func zeroCategoryBuckets() map[enum.ExpenseCategory]decimal.Decimal {
	buckets := make(map[enum.ExpenseCategory]decimal.Decimal, len(enum.ExpenseCategories()))
	for _, c := range enum.ExpenseCategories() {
		buckets[c] = decimal.Zero
	}
	return buckets
}
