// internal/service/service.go
package service

import (
	"time"

	"credit-ledger/internal/domain"
	"credit-ledger/internal/storage"

	"github.com/shopspring/decimal"
)

// Storage is everything the reporting service needs from the data store.
type Storage interface {
	storage.CreditStorage
	storage.PlanStorage
	storage.PerformanceStorage
}

type Service struct {
	store Storage
	dict  domain.DictionaryIDs
	now   func() time.Time
}

// New builds a Service over the given store. dict is the dictionary id set
// resolved once at startup; ids left at 0 match no rows, so the affected
// totals degrade to zero instead of erroring.
func New(store Storage, dict domain.DictionaryIDs) *Service {
	return &Service{store: store, dict: dict, now: time.Now}
}

var hundred = decimal.NewFromInt(100)

// ratioPercent renders actual/plan as a percent string rounded to two
// places with trailing zeros trimmed: "73.21%", "50%". A zero denominator
// yields "0%", never a division fault.
func ratioPercent(actual, plan decimal.Decimal) string {
	if plan.IsZero() {
		return "0%"
	}
	return actual.Mul(hundred).Div(plan).Round(2).String() + "%"
}
