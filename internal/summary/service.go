package summary

import (
	"time"

	errors "github.com/kab1012/budget-tracker/internal"
	"github.com/kab1012/budget-tracker/internal/budget"
	"github.com/kab1012/budget-tracker/internal/transaction"
	"github.com/shopspring/decimal"
)

type ServiceAPI interface {
	Summarize(userID int64, at time.Time) (*FinancialSummary, error)
}

// TransactionSummer is the slice of the transaction repository the
// summary needs.
type TransactionSummer interface {
	SumByTypeInMonth(userID int64, transactionType string, from, to time.Time) (decimal.Decimal, error)
}

// BudgetSummer is the slice of the budget repository the summary needs.
type BudgetSummer interface {
	SumInMonth(userID int64, from, to time.Time) (decimal.Decimal, error)
}

type Service struct {
	transactions TransactionSummer
	budgets      BudgetSummer
}

func NewService(transactions TransactionSummer, budgets BudgetSummer) *Service {
	return &Service{
		transactions: transactions,
		budgets:      budgets,
	}
}

// Summarize totals the user's income, expenses and budgets for the
// calendar month containing at. Balance is income minus expenses;
// BudgetVsActual is budget minus expenses, negative when overspent.
func (s *Service) Summarize(userID int64, at time.Time) (*FinancialSummary, error) {
	from := budget.TruncateToMonth(at)
	to := from.AddDate(0, 1, 0)

	income, err := s.transactions.SumByTypeInMonth(userID, transaction.TypeIncome, from, to)
	if err != nil {
		return nil, errors.NewInternalError("failed to build summary", err)
	}

	expenses, err := s.transactions.SumByTypeInMonth(userID, transaction.TypeExpense, from, to)
	if err != nil {
		return nil, errors.NewInternalError("failed to build summary", err)
	}

	budgeted, err := s.budgets.SumInMonth(userID, from, to)
	if err != nil {
		return nil, errors.NewInternalError("failed to build summary", err)
	}

	return &FinancialSummary{
		TotalIncome:    income,
		TotalExpenses:  expenses,
		Balance:        income.Sub(expenses),
		MonthlyBudget:  budgeted,
		BudgetVsActual: budgeted.Sub(expenses),
	}, nil
}
