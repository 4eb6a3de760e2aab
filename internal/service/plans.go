// internal/service/plans.go
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"credit-ledger/internal/domain"
	"credit-ledger/internal/upload"
)

// PlanRow is one raw uploaded row, cells still unparsed.
type PlanRow struct {
	Period     string
	Sum        string
	CategoryID string
}

// InsertPlans validates the batch row by row and, only if every row
// passes, writes it in one transaction. The first invalid row aborts the
// whole upload with its 1-based index; nothing is persisted.
//
// The duplicate check runs against committed store state only, not against
// rows staged earlier in the same batch, so two identical rows inside one
// upload both pass and both get inserted. That mirrors the historical
// behavior callers rely on.
func (s *Service) InsertPlans(ctx context.Context, rows []PlanRow) error {
	staged := make([]domain.Plan, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 1

		period, err := upload.ParseDate(strings.TrimSpace(row.Period))
		if err != nil {
			return rowError(rowNum, "Invalid date format in row %d", rowNum)
		}
		if period.Day() != 1 {
			return rowError(rowNum, "Date in row %d must be the first day of the month", rowNum)
		}

		sumStr := strings.TrimSpace(row.Sum)
		if sumStr == "" {
			return rowError(rowNum, "The 'sum' field in row %d is empty", rowNum)
		}
		sum, err := parseIntCell(sumStr)
		if err != nil {
			return rowError(rowNum, "Invalid sum in row %d", rowNum)
		}

		categoryID, err := parseIntCell(strings.TrimSpace(row.CategoryID))
		if err != nil {
			return rowError(rowNum, "Invalid category_id in row %d", rowNum)
		}

		exists, err := s.store.PlanExists(ctx, period, int(categoryID))
		if err != nil {
			return fmt.Errorf("check plan for row %d: %w", rowNum, err)
		}
		if exists {
			return rowError(rowNum, "A plan for period %s and category %d already exists (row %d)",
				period.Format(dateLayout), categoryID, rowNum)
		}

		staged = append(staged, domain.Plan{Period: period, Sum: sum, CategoryID: int(categoryID)})
	}

	if err := s.store.InsertPlans(ctx, staged); err != nil {
		return fmt.Errorf("insert %d plans: %w", len(staged), err)
	}
	return nil
}

// parseIntCell accepts plain integers plus the "5.0" form spreadsheet
// exports produce, truncating toward zero.
func parseIntCell(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
