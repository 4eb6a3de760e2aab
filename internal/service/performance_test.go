// internal/service/performance_test.go
package service

import (
	"context"
	"testing"
	"time"

	"credit-ledger/internal/domain"
	"credit-ledger/internal/storage/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearPerformanceRange(t *testing.T) {
	svc := testService(memory.Seeded())
	ctx := context.Background()

	tests := []struct {
		name    string
		year    int
		wantErr bool
	}{
		{"below lower bound", 1999, true},
		{"lower bound", 2000, false},
		{"current year", 2024, false},
		{"next year", 2025, false},
		{"beyond next year", 2026, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.YearPerformance(ctx, tt.year)
			if tt.wantErr {
				var rangeErr *YearRangeError
				require.ErrorAs(t, err, &rangeErr)
				assert.Equal(t, tt.year, rangeErr.Year)
				assert.Contains(t, rangeErr.Error(), "Must be between 2000 and 2025")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestYearPerformanceShape(t *testing.T) {
	svc := testService(memory.Seeded())

	records, err := svc.YearPerformance(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, records, 13)

	for i := 0; i < 12; i++ {
		m, ok := records[i].(domain.MonthPerformance)
		require.True(t, ok, "record %d should be a month record", i)
		assert.Equal(t, i+1, m.Month)
		assert.Equal(t, 2024, m.Year)
	}

	totals, ok := records[12].(domain.YearTotals)
	require.True(t, ok, "record 13 should be the totals record")
	assert.Equal(t, 2024, totals.Year)
}

func TestYearPerformanceEmptyYearAllZeroPercents(t *testing.T) {
	svc := testService(memory.Seeded())

	records, err := svc.YearPerformance(context.Background(), 2023)
	require.NoError(t, err)

	for _, record := range records[:12] {
		m := record.(domain.MonthPerformance)
		assert.Equal(t, "0%", m.IssuancePlanPercent)
		assert.Equal(t, "0%", m.PaymentPlanPerformancePercent)
		assert.Equal(t, "0%", m.SumMonthIssuancePercent)
		assert.Equal(t, "0%", m.SumMonthPaymentPercent)
	}
	totals := records[12].(domain.YearTotals)
	assert.Equal(t, "0%", totals.TotalIssuancePlanPercent)
	assert.Equal(t, "0%", totals.TotalPaymentPlanPerformancePercent)
}

func TestYearPerformanceIssuancesWithoutPlans(t *testing.T) {
	store := memory.Seeded()
	store.Credits = []domain.Credit{
		{ID: 1, UserID: 1, IssuanceDate: date(2024, 3, 5), ReturnDate: date(2024, 9, 5), Body: 5000, Percent: decimal.RequireFromString("10.0")},
		{ID: 2, UserID: 1, IssuanceDate: date(2024, 3, 12), ReturnDate: date(2024, 9, 12), Body: 4000, Percent: decimal.RequireFromString("10.0")},
		{ID: 3, UserID: 2, IssuanceDate: date(2024, 3, 28), ReturnDate: date(2024, 9, 28), Body: 6000, Percent: decimal.RequireFromString("10.0")},
	}
	svc := testService(store)

	records, err := svc.YearPerformance(context.Background(), 2024)
	require.NoError(t, err)

	march := records[2].(domain.MonthPerformance)
	assert.Equal(t, 3, march.Issuances)
	assert.Equal(t, int64(15000), march.SumIssuancesForMonth)
	assert.Equal(t, int64(0), march.PlanSumIssuances)
	assert.Equal(t, "0%", march.IssuancePlanPercent)

	// All of the year's issuance volume sits in March.
	assert.Equal(t, "100%", march.SumMonthIssuancePercent)
	assert.Equal(t, "0%", records[0].(domain.MonthPerformance).SumMonthIssuancePercent)
}

func TestYearPerformanceRatios(t *testing.T) {
	store := memory.Seeded()
	store.Credits = []domain.Credit{
		{ID: 1, UserID: 1, IssuanceDate: date(2024, 1, 5), ReturnDate: date(2024, 7, 5), Body: 14642, Percent: decimal.RequireFromString("10.0")},
		{ID: 2, UserID: 1, IssuanceDate: date(2024, 2, 5), ReturnDate: date(2024, 8, 5), Body: 10000, Percent: decimal.RequireFromString("10.0")},
	}
	store.Payments = []domain.Payment{
		{ID: 1, CreditID: 1, PaymentDate: date(2024, 1, 20), TypeID: 1, Sum: decimal.RequireFromString("1500.00")},
		{ID: 2, CreditID: 1, PaymentDate: date(2024, 1, 25), TypeID: 2, Sum: decimal.RequireFromString("500.00")},
	}
	store.Plans = []domain.Plan{
		{ID: 1, Period: date(2024, 1, 1), Sum: 20000, CategoryID: 3},
		{ID: 2, Period: date(2024, 2, 1), Sum: 20000, CategoryID: 3},
		{ID: 3, Period: date(2024, 1, 1), Sum: 4000, CategoryID: 4},
	}
	svc := testService(store)

	records, err := svc.YearPerformance(context.Background(), 2024)
	require.NoError(t, err)

	january := records[0].(domain.MonthPerformance)
	assert.Equal(t, int64(20000), january.PlanSumIssuances)
	assert.Equal(t, "73.21%", january.IssuancePlanPercent)
	assert.Equal(t, 2, january.PaymentsInMonth)
	assert.Equal(t, "2000", january.SumPaymentsForMonth.String())
	assert.Equal(t, "50%", january.PaymentPlanPerformancePercent)

	february := records[1].(domain.MonthPerformance)
	assert.Equal(t, "50%", february.IssuancePlanPercent)

	// Share of year: 14642 / 24642 and 10000 / 24642.
	assert.Equal(t, "59.42%", january.SumMonthIssuancePercent)
	assert.Equal(t, "40.58%", february.SumMonthIssuancePercent)
	assert.Equal(t, "100%", january.SumMonthPaymentPercent)

	totals := records[12].(domain.YearTotals)
	assert.Equal(t, 2, totals.TotalIssuances)
	assert.Equal(t, int64(40000), totals.PlanSumIssuances)
	assert.Equal(t, int64(24642), totals.TotalSumIssuancesForMonth)
	assert.Equal(t, "61.61%", totals.TotalIssuancePlanPercent)
	assert.Equal(t, 2, totals.TotalPaymentsInMonth)
	assert.Equal(t, int64(4000), totals.TotalPlanSumForPayments)
	assert.Equal(t, "2000", totals.TotalSumPaymentsForMonth.String())
	assert.Equal(t, "50%", totals.TotalPaymentPlanPerformancePercent)
}

func TestYearPerformanceClockDrivesUpperBound(t *testing.T) {
	svc := testService(memory.Seeded())
	svc.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }

	_, err := svc.YearPerformance(context.Background(), 2031)
	assert.NoError(t, err)

	var rangeErr *YearRangeError
	_, err = svc.YearPerformance(context.Background(), 2032)
	assert.ErrorAs(t, err, &rangeErr)
}
