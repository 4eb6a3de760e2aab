// internal/storage/storage.go
package storage

import (
	"context"
	"time"

	"credit-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

type DictionaryStorage interface {
	// ResolveIDs maps the fixed dictionary names to their ids. Names absent
	// from the table resolve to 0, which matches no rows downstream.
	ResolveIDs(ctx context.Context) (domain.DictionaryIDs, error)
}

type CreditStorage interface {
	CreditsByUser(ctx context.Context, userID int64) ([]domain.Credit, error)
	TotalPayments(ctx context.Context, creditID int64) (decimal.Decimal, error)
	TotalPaymentsByType(ctx context.Context, creditID int64, typeID int) (decimal.Decimal, error)
}

type PlanStorage interface {
	PlanExists(ctx context.Context, period time.Time, categoryID int) (bool, error)
	// InsertPlans writes the whole batch in a single transaction: all rows
	// or none.
	InsertPlans(ctx context.Context, plans []domain.Plan) error
}

// PerformanceStorage returns per-month aggregates for one calendar year.
// Maps are keyed by month 1..12; months with no rows are absent.
type PerformanceStorage interface {
	CountIssuancesByMonth(ctx context.Context, year int) (map[int]int, error)
	SumIssuancesByMonth(ctx context.Context, year int) (map[int]int64, error)
	CountPaymentsByMonth(ctx context.Context, year int) (map[int]int, error)
	SumPaymentsByMonth(ctx context.Context, year int) (map[int]decimal.Decimal, error)
	PlanSumsByMonth(ctx context.Context, year int, categoryID int) (map[int]int64, error)
}
