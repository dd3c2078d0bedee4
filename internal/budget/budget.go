package budget

import (
	"time"

	budgetDatamodel "github.com/kab1012/budget-tracker/internal/core/datamodel/budget"
	"github.com/shopspring/decimal"
)

// DateFormat is the wire format for budget months; any day-of-month is
// accepted and normalized to the first.
const DateFormat = "2006-01-02"

type Budget struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"-"`
	CategoryID   int64           `json:"category"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
	Month        time.Time       `json:"month"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (b *Budget) ToResponse() BudgetResponse {
	return BudgetResponse{
		ID:           b.ID,
		CategoryID:   b.CategoryID,
		CategoryName: b.CategoryName,
		Amount:       b.Amount.StringFixed(2),
		Month:        b.Month.Format(DateFormat),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// TruncateToMonth pins a date to the first day of its month at UTC
// midnight, the canonical storage form for budget months.
func TruncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func ToDataModel(b *Budget) *budgetDatamodel.Budget {
	return &budgetDatamodel.Budget{
		ID:         b.ID,
		UserID:     b.UserID,
		CategoryID: b.CategoryID,
		Amount:     b.Amount,
		Month:      b.Month,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func FromDataModel(b *budgetDatamodel.Budget) *Budget {
	return &Budget{
		ID:         b.ID,
		UserID:     b.UserID,
		CategoryID: b.CategoryID,
		Amount:     b.Amount,
		Month:      b.Month,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func FromDataModelSlice(budgets []*budgetDatamodel.Budget) []*Budget {
	result := make([]*Budget, len(budgets))
	for i, b := range budgets {
		result[i] = FromDataModel(b)
	}
	return result
}
