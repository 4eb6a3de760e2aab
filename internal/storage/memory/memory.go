// internal/storage/memory/memory.go
package memory

import (
	"context"
	"sync"
	"time"

	"credit-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

// Storage is an in-memory implementation of the storage interfaces, used
// as a test double for handlers and services.
type Storage struct {
	mu       sync.Mutex
	Credits  []domain.Credit
	Payments []domain.Payment
	Plans    []domain.Plan
	Dict     []domain.DictionaryEntry
}

func New() *Storage {
	return &Storage{}
}

// Seeded returns a store with the four dictionary names the reports
// depend on, ids 1..4.
func Seeded() *Storage {
	return &Storage{Dict: []domain.DictionaryEntry{
		{ID: 1, Name: domain.DictBody},
		{ID: 2, Name: domain.DictPercent},
		{ID: 3, Name: domain.DictIssuance},
		{ID: 4, Name: domain.DictCollection},
	}}
}

func (s *Storage) ResolveIDs(_ context.Context) (domain.DictionaryIDs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids domain.DictionaryIDs
	for _, entry := range s.Dict {
		switch entry.Name {
		case domain.DictBody:
			ids.Body = entry.ID
		case domain.DictPercent:
			ids.Percent = entry.ID
		case domain.DictIssuance:
			ids.Issuance = entry.ID
		case domain.DictCollection:
			ids.Collection = entry.ID
		}
	}
	return ids, nil
}

func (s *Storage) CreditsByUser(_ context.Context, userID int64) ([]domain.Credit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var credits []domain.Credit
	for _, c := range s.Credits {
		if c.UserID == userID {
			credits = append(credits, c)
		}
	}
	return credits, nil
}

func (s *Storage) TotalPayments(_ context.Context, creditID int64) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, p := range s.Payments {
		if p.CreditID == creditID {
			total = total.Add(p.Sum)
		}
	}
	return total, nil
}

func (s *Storage) TotalPaymentsByType(_ context.Context, creditID int64, typeID int) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, p := range s.Payments {
		if p.CreditID == creditID && p.TypeID == typeID {
			total = total.Add(p.Sum)
		}
	}
	return total, nil
}

func (s *Storage) PlanExists(_ context.Context, period time.Time, categoryID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.Plans {
		if sameDay(p.Period, period) && p.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Storage) InsertPlans(_ context.Context, plans []domain.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range plans {
		p.ID = int64(len(s.Plans) + 1)
		s.Plans = append(s.Plans, p)
	}
	return nil
}

func (s *Storage) CountIssuancesByMonth(_ context.Context, year int) (map[int]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[int]int)
	for _, c := range s.Credits {
		if c.IssuanceDate.Year() == year {
			result[int(c.IssuanceDate.Month())]++
		}
	}
	return result, nil
}

func (s *Storage) SumIssuancesByMonth(_ context.Context, year int) (map[int]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[int]int64)
	for _, c := range s.Credits {
		if c.IssuanceDate.Year() == year {
			result[int(c.IssuanceDate.Month())] += c.Body
		}
	}
	return result, nil
}

func (s *Storage) CountPaymentsByMonth(_ context.Context, year int) (map[int]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[int]int)
	for _, p := range s.Payments {
		if p.PaymentDate.Year() == year {
			result[int(p.PaymentDate.Month())]++
		}
	}
	return result, nil
}

func (s *Storage) SumPaymentsByMonth(_ context.Context, year int) (map[int]decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[int]decimal.Decimal)
	for _, p := range s.Payments {
		if p.PaymentDate.Year() == year {
			month := int(p.PaymentDate.Month())
			result[month] = result[month].Add(p.Sum)
		}
	}
	return result, nil
}

func (s *Storage) PlanSumsByMonth(_ context.Context, year int, categoryID int) (map[int]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[int]int64)
	for _, p := range s.Plans {
		if p.Period.Year() == year && p.CategoryID == categoryID {
			result[int(p.Period.Month())] += p.Sum
		}
	}
	return result, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
