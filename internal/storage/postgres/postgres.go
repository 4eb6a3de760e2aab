// internal/storage/postgres/postgres.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"credit-ledger/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

// === DictionaryStorage ===

func (s *Storage) ResolveIDs(ctx context.Context) (domain.DictionaryIDs, error) {
	var ids domain.DictionaryIDs

	rows, err := s.db.Query(ctx, `
		SELECT id, name FROM dictionary
		WHERE name = ANY($1)
	`, []string{domain.DictBody, domain.DictPercent, domain.DictIssuance, domain.DictCollection})
	if err != nil {
		return ids, fmt.Errorf("resolve dictionary ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return ids, fmt.Errorf("scan dictionary row: %w", err)
		}
		switch name {
		case domain.DictBody:
			ids.Body = id
		case domain.DictPercent:
			ids.Percent = id
		case domain.DictIssuance:
			ids.Issuance = id
		case domain.DictCollection:
			ids.Collection = id
		}
	}
	return ids, rows.Err()
}

// === CreditStorage ===

func (s *Storage) CreditsByUser(ctx context.Context, userID int64) ([]domain.Credit, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, issuance_date, return_date, actual_return_date, body, percent::text
		FROM credits
		WHERE user_id = $1
		ORDER BY issuance_date, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query credits: %w", err)
	}
	defer rows.Close()

	var credits []domain.Credit
	for rows.Next() {
		var c domain.Credit
		var percent string
		if err := rows.Scan(&c.ID, &c.UserID, &c.IssuanceDate, &c.ReturnDate,
			&c.ActualReturnDate, &c.Body, &percent); err != nil {
			return nil, fmt.Errorf("scan credit: %w", err)
		}
		if c.Percent, err = decimal.NewFromString(percent); err != nil {
			return nil, fmt.Errorf("parse percent %q: %w", percent, err)
		}
		credits = append(credits, c)
	}
	return credits, rows.Err()
}

func (s *Storage) TotalPayments(ctx context.Context, creditID int64) (decimal.Decimal, error) {
	return s.sumPayments(ctx, `
		SELECT COALESCE(SUM(sum), 0)::text FROM payments WHERE credit_id = $1
	`, creditID)
}

func (s *Storage) TotalPaymentsByType(ctx context.Context, creditID int64, typeID int) (decimal.Decimal, error) {
	return s.sumPayments(ctx, `
		SELECT COALESCE(SUM(sum), 0)::text FROM payments WHERE credit_id = $1 AND type_id = $2
	`, creditID, typeID)
}

func (s *Storage) sumPayments(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var total string
	if err := s.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	sum, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse payment sum %q: %w", total, err)
	}
	return sum, nil
}

// === PlanStorage ===

func (s *Storage) PlanExists(ctx context.Context, period time.Time, categoryID int) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM plans WHERE period = $1 AND category_id = $2)
	`, period, categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check plan exists: %w", err)
	}
	return exists, nil
}

func (s *Storage) InsertPlans(ctx context.Context, plans []domain.Plan) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range plans {
		_, err := tx.Exec(ctx, `
			INSERT INTO plans (period, sum, category_id) VALUES ($1, $2, $3)
		`, p.Period, p.Sum, p.CategoryID)
		if err != nil {
			return fmt.Errorf("insert plan (%s, %d): %w", p.Period.Format("2006-01-02"), p.CategoryID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// === PerformanceStorage ===

func (s *Storage) CountIssuancesByMonth(ctx context.Context, year int) (map[int]int, error) {
	return s.intByMonth(ctx, `
		SELECT EXTRACT(MONTH FROM issuance_date)::int, COUNT(*)::int
		FROM credits
		WHERE issuance_date >= make_date($1, 1, 1) AND issuance_date < make_date($1 + 1, 1, 1)
		GROUP BY 1
	`, year)
}

func (s *Storage) SumIssuancesByMonth(ctx context.Context, year int) (map[int]int64, error) {
	return s.int64ByMonth(ctx, `
		SELECT EXTRACT(MONTH FROM issuance_date)::int, COALESCE(SUM(body), 0)::bigint
		FROM credits
		WHERE issuance_date >= make_date($1, 1, 1) AND issuance_date < make_date($1 + 1, 1, 1)
		GROUP BY 1
	`, year)
}

func (s *Storage) CountPaymentsByMonth(ctx context.Context, year int) (map[int]int, error) {
	return s.intByMonth(ctx, `
		SELECT EXTRACT(MONTH FROM p.payment_date)::int, COUNT(*)::int
		FROM payments p
		JOIN credits c ON c.id = p.credit_id
		WHERE p.payment_date >= make_date($1, 1, 1) AND p.payment_date < make_date($1 + 1, 1, 1)
		GROUP BY 1
	`, year)
}

func (s *Storage) SumPaymentsByMonth(ctx context.Context, year int) (map[int]decimal.Decimal, error) {
	rows, err := s.db.Query(ctx, `
		SELECT EXTRACT(MONTH FROM p.payment_date)::int, COALESCE(SUM(p.sum), 0)::text
		FROM payments p
		JOIN credits c ON c.id = p.credit_id
		WHERE p.payment_date >= make_date($1, 1, 1) AND p.payment_date < make_date($1 + 1, 1, 1)
		GROUP BY 1
	`, year)
	if err != nil {
		return nil, fmt.Errorf("sum payments by month: %w", err)
	}
	defer rows.Close()

	result := make(map[int]decimal.Decimal)
	for rows.Next() {
		var month int
		var sum string
		if err := rows.Scan(&month, &sum); err != nil {
			return nil, fmt.Errorf("scan month sum: %w", err)
		}
		d, err := decimal.NewFromString(sum)
		if err != nil {
			return nil, fmt.Errorf("parse month sum %q: %w", sum, err)
		}
		result[month] = d
	}
	return result, rows.Err()
}

func (s *Storage) PlanSumsByMonth(ctx context.Context, year int, categoryID int) (map[int]int64, error) {
	return s.int64ByMonth(ctx, `
		SELECT EXTRACT(MONTH FROM period)::int, COALESCE(SUM(sum), 0)::bigint
		FROM plans
		WHERE period >= make_date($1, 1, 1) AND period < make_date($1 + 1, 1, 1)
		  AND category_id = $2
		GROUP BY 1
	`, year, categoryID)
}

func (s *Storage) intByMonth(ctx context.Context, query string, args ...any) (map[int]int, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query by month: %w", err)
	}
	defer rows.Close()

	result := make(map[int]int)
	for rows.Next() {
		var month, value int
		if err := rows.Scan(&month, &value); err != nil {
			return nil, fmt.Errorf("scan month row: %w", err)
		}
		result[month] = value
	}
	return result, rows.Err()
}

func (s *Storage) int64ByMonth(ctx context.Context, query string, args ...any) (map[int]int64, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query by month: %w", err)
	}
	defer rows.Close()

	result := make(map[int]int64)
	for rows.Next() {
		var month int
		var value int64
		if err := rows.Scan(&month, &value); err != nil {
			return nil, fmt.Errorf("scan month row: %w", err)
		}
		result[month] = value
	}
	return result, rows.Err()
}
