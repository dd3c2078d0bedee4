// Package summary derives a monthly financial overview from the
// transactions and budgets recorded for a single user.
package summary

import "github.com/shopspring/decimal"

// FinancialSummary aggregates a user's activity for one calendar month.
type FinancialSummary struct {
	TotalIncome    decimal.Decimal
	TotalExpenses  decimal.Decimal
	Balance        decimal.Decimal
	MonthlyBudget  decimal.Decimal
	BudgetVsActual decimal.Decimal
}

// FinancialSummaryResponse is the wire form, amounts rendered with two
// decimal places.
type FinancialSummaryResponse struct {
	TotalIncome    string `json:"total_income"`
	TotalExpenses  string `json:"total_expenses"`
	Balance        string `json:"balance"`
	MonthlyBudget  string `json:"monthly_budget"`
	BudgetVsActual string `json:"budget_vs_actual"`
}

func (s FinancialSummary) ToResponse() FinancialSummaryResponse {
	return FinancialSummaryResponse{
		TotalIncome:    s.TotalIncome.StringFixed(2),
		TotalExpenses:  s.TotalExpenses.StringFixed(2),
		Balance:        s.Balance.StringFixed(2),
		MonthlyBudget:  s.MonthlyBudget.StringFixed(2),
		BudgetVsActual: s.BudgetVsActual.StringFixed(2),
	}
}
