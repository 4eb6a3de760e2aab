// internal/domain/reports.go
package domain

import "github.com/shopspring/decimal"

// CreditReport is one element of the /user_credits response. Exactly one of
// the closed-credit fields (actual_return_date, total_payments) or the
// open-credit fields (return_date, overdue_days, body_payments,
// percent_payments) is present, depending on IsClosed.
type CreditReport struct {
	IssuanceDate     string           `json:"issuance_date"`
	IsClosed         bool             `json:"is_closed"`
	ActualReturnDate string           `json:"actual_return_date,omitempty"`
	ReturnDate       string           `json:"return_date,omitempty"`
	OverdueDays      *int             `json:"overdue_days,omitempty"`
	Body             int64            `json:"body"`
	Percent          decimal.Decimal  `json:"percent"`
	TotalPayments    *decimal.Decimal `json:"total_payments,omitempty"`
	BodyPayments     *decimal.Decimal `json:"body_payments,omitempty"`
	PercentPayments  *decimal.Decimal `json:"percent_payments,omitempty"`
}

// MonthPerformance is one of the 12 per-month records of the
// /year_performance response.
type MonthPerformance struct {
	Month                         int             `json:"month"`
	Year                          int             `json:"year"`
	Issuances                     int             `json:"issuances"`
	PlanSumIssuances              int64           `json:"plan_sum_issuances"`
	SumIssuancesForMonth          int64           `json:"sum_issuances_for_month"`
	IssuancePlanPercent           string          `json:"issuance_plan_percent"`
	PaymentsInMonth               int             `json:"payments_in_month"`
	PlanSumForPayments            int64           `json:"plan_sum_for_payments"`
	SumPaymentsForMonth           decimal.Decimal `json:"sum_payments_for_month"`
	PaymentPlanPerformancePercent string          `json:"payment_plan_performance_percent"`
	SumMonthIssuancePercent       string          `json:"sum_month_issuance_percent"`
	SumMonthPaymentPercent        string          `json:"sum_month_payment_percent"`
}

// YearTotals is the trailing aggregate record of the /year_performance
// response. It carries no "month" field; callers tell it apart from the
// monthly records by its field shape.
type YearTotals struct {
	TotalIssuances                     int             `json:"total_issuances"`
	Year                               int             `json:"year"`
	PlanSumIssuances                   int64           `json:"plan_sum_issuances"`
	TotalSumIssuancesForMonth          int64           `json:"total_sum_issuances_for_month"`
	TotalIssuancePlanPercent           string          `json:"total_issuance_plan_percent"`
	TotalPaymentsInMonth               int             `json:"total_payments_in_month"`
	TotalPlanSumForPayments            int64           `json:"total_plan_sum_for_payments"`
	TotalSumPaymentsForMonth           decimal.Decimal `json:"total_sum_payments_for_month"`
	TotalPaymentPlanPerformancePercent string          `json:"total_payment_plan_performance_percent"`
}
