// internal/service/performance.go
package service

import (
	"context"
	"fmt"

	"credit-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

// MinReportYear is the oldest year a performance report can be requested
// for. The upper bound is the current year plus one.
const MinReportYear = 2000

// MaxReportYear is the newest year a report can be requested for.
func (s *Service) MaxReportYear() int {
	return s.now().Year() + 1
}

// YearPerformance builds the 13-element yearly report: one record per
// month in order, then one totals record. Every percent field follows the
// same rule: "0%" when the denominator is zero, otherwise the ratio times
// 100 rounded to two places.
func (s *Service) YearPerformance(ctx context.Context, year int) ([]any, error) {
	maxYear := s.now().Year() + 1
	if year < MinReportYear || year > maxYear {
		return nil, &YearRangeError{Year: year, Max: maxYear}
	}

	issuanceCounts, err := s.store.CountIssuancesByMonth(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("count issuances: %w", err)
	}
	issuanceSums, err := s.store.SumIssuancesByMonth(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("sum issuances: %w", err)
	}
	paymentCounts, err := s.store.CountPaymentsByMonth(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}
	paymentSums, err := s.store.SumPaymentsByMonth(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("sum payments: %w", err)
	}
	issuancePlans, err := s.store.PlanSumsByMonth(ctx, year, s.dict.Issuance)
	if err != nil {
		return nil, fmt.Errorf("issuance plan sums: %w", err)
	}
	collectionPlans, err := s.store.PlanSumsByMonth(ctx, year, s.dict.Collection)
	if err != nil {
		return nil, fmt.Errorf("collection plan sums: %w", err)
	}

	months := make([]domain.MonthPerformance, 0, 12)
	totals := domain.YearTotals{Year: year}
	totalPayments := decimal.Zero
	for month := 1; month <= 12; month++ {
		m := domain.MonthPerformance{
			Month:                month,
			Year:                 year,
			Issuances:            issuanceCounts[month],
			PlanSumIssuances:     issuancePlans[month],
			SumIssuancesForMonth: issuanceSums[month],
			PaymentsInMonth:      paymentCounts[month],
			PlanSumForPayments:   collectionPlans[month],
			SumPaymentsForMonth:  paymentSums[month],
		}
		m.IssuancePlanPercent = ratioPercent(
			decimal.NewFromInt(m.SumIssuancesForMonth), decimal.NewFromInt(m.PlanSumIssuances))
		m.PaymentPlanPerformancePercent = ratioPercent(
			m.SumPaymentsForMonth, decimal.NewFromInt(m.PlanSumForPayments))
		months = append(months, m)

		totals.TotalIssuances += m.Issuances
		totals.PlanSumIssuances += m.PlanSumIssuances
		totals.TotalSumIssuancesForMonth += m.SumIssuancesForMonth
		totals.TotalPaymentsInMonth += m.PaymentsInMonth
		totals.TotalPlanSumForPayments += m.PlanSumForPayments
		totalPayments = totalPayments.Add(m.SumPaymentsForMonth)
	}

	// Share-of-year percents need the year totals, so they come last.
	totalIssued := decimal.NewFromInt(totals.TotalSumIssuancesForMonth)
	for i := range months {
		months[i].SumMonthIssuancePercent = ratioPercent(
			decimal.NewFromInt(months[i].SumIssuancesForMonth), totalIssued)
		months[i].SumMonthPaymentPercent = ratioPercent(
			months[i].SumPaymentsForMonth, totalPayments)
	}

	totals.TotalSumPaymentsForMonth = totalPayments
	totals.TotalIssuancePlanPercent = ratioPercent(
		totalIssued, decimal.NewFromInt(totals.PlanSumIssuances))
	totals.TotalPaymentPlanPerformancePercent = ratioPercent(
		totalPayments, decimal.NewFromInt(totals.TotalPlanSumForPayments))

	result := make([]any, 0, len(months)+1)
	for _, m := range months {
		result = append(result, m)
	}
	result = append(result, totals)
	return result, nil
}
