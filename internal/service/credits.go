// internal/service/credits.go
package service

import (
	"context"
	"fmt"
	"time"

	"credit-ledger/internal/domain"
)

const dateLayout = "2006-01-02"

// OverdueDays is the number of whole days the credit is past its planned
// return date. Never negative.
func OverdueDays(returnDate, today time.Time) int {
	overdue := int(dateOnly(today).Sub(dateOnly(returnDate)).Hours() / 24)
	return max(overdue, 0)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CreditReports summarizes every credit of one user. A closed credit (one
// with an actual return date) reports its total payments; an open credit
// reports overdue days and payments split into body and percent
// repayments. ErrNotFound when the user has no credits at all.
func (s *Service) CreditReports(ctx context.Context, userID int64) ([]domain.CreditReport, error) {
	credits, err := s.store.CreditsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load credits for user %d: %w", userID, err)
	}
	if len(credits) == 0 {
		return nil, ErrNotFound
	}

	today := s.now()
	reports := make([]domain.CreditReport, 0, len(credits))
	for _, credit := range credits {
		report := domain.CreditReport{
			IssuanceDate: credit.IssuanceDate.Format(dateLayout),
			IsClosed:     credit.Closed(),
			Body:         credit.Body,
			Percent:      credit.Percent,
		}

		if credit.Closed() {
			total, err := s.store.TotalPayments(ctx, credit.ID)
			if err != nil {
				return nil, fmt.Errorf("total payments for credit %d: %w", credit.ID, err)
			}
			report.ActualReturnDate = credit.ActualReturnDate.Format(dateLayout)
			report.TotalPayments = &total
		} else {
			body, err := s.store.TotalPaymentsByType(ctx, credit.ID, s.dict.Body)
			if err != nil {
				return nil, fmt.Errorf("body payments for credit %d: %w", credit.ID, err)
			}
			percent, err := s.store.TotalPaymentsByType(ctx, credit.ID, s.dict.Percent)
			if err != nil {
				return nil, fmt.Errorf("percent payments for credit %d: %w", credit.ID, err)
			}
			overdue := OverdueDays(credit.ReturnDate, today)
			report.ReturnDate = credit.ReturnDate.Format(dateLayout)
			report.OverdueDays = &overdue
			report.BodyPayments = &body
			report.PercentPayments = &percent
		}

		reports = append(reports, report)
	}
	return reports, nil
}
