package budget

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	errors "github.com/kab1012/budget-tracker/internal"
	"github.com/kab1012/budget-tracker/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

type BudgetResponse struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category"`
	CategoryName string    `json:"category_name"`
	Amount       string    `json:"amount"`
	Month        string    `json:"month"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

type CreateBudgetDTO struct {
	CategoryID int64            `json:"category"`
	Amount     *decimal.Decimal `json:"amount"`
	Month      string           `json:"month"`
}

func (dto *CreateBudgetDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("category", dto.CategoryID).Required()
	v.Field("amount", dto.Amount).Required().Money()
	v.Field("month", dto.Month).Required().Custom(monthFormat("month"))
	return v.Validate()
}

// ParsedMonth returns the month normalized to its first day. Call after
// Validate.
func (dto *CreateBudgetDTO) ParsedMonth() time.Time {
	d, _ := time.ParseInLocation(DateFormat, dto.Month, time.UTC)
	return TruncateToMonth(d)
}

type UpdateBudgetDTO struct {
	CategoryID *int64           `json:"category"`
	Amount     *decimal.Decimal `json:"amount"`
	Month      *string          `json:"month"`
}

func (dto *UpdateBudgetDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.CategoryID != nil {
		v.Field("category", *dto.CategoryID).Required()
	}
	if dto.Amount != nil {
		v.Field("amount", dto.Amount).Money()
	}
	if dto.Month != nil {
		v.Field("month", *dto.Month).Required().Custom(monthFormat("month"))
	}
	return v.Validate()
}

func (dto *UpdateBudgetDTO) ParsedMonth() time.Time {
	d, _ := time.ParseInLocation(DateFormat, *dto.Month, time.UTC)
	return TruncateToMonth(d)
}

var orderings = map[string]string{
	"month":      "month",
	"amount":     "amount",
	"created_at": "created_at",
}

type ListQuery struct {
	CategoryID int64
	Month      *time.Time
	Search     string
	OrderBy    string
}

func ParseListQuery(values url.Values) (ListQuery, *errors.AppError) {
	q := ListQuery{
		Search:  strings.TrimSpace(values.Get("search")),
		OrderBy: "month DESC",
	}

	if cat := values.Get("category"); cat != "" {
		id, err := strconv.ParseInt(cat, 10, 64)
		if err != nil || id <= 0 {
			return q, errors.NewValidationFieldError("category",
				"category filter must be a positive integer", errors.ErrCodeInvalidQuery)
		}
		q.CategoryID = id
	}

	if month := values.Get("month"); month != "" {
		d, err := time.ParseInLocation(DateFormat, month, time.UTC)
		if err != nil {
			return q, errors.NewValidationFieldError("month",
				"month filter must use YYYY-MM-DD", errors.ErrCodeInvalidMonth)
		}
		normalized := TruncateToMonth(d)
		q.Month = &normalized
	}

	if ordering := values.Get("ordering"); ordering != "" {
		direction := "ASC"
		field := ordering
		if strings.HasPrefix(ordering, "-") {
			direction = "DESC"
			field = ordering[1:]
		}
		column, ok := orderings[field]
		if !ok {
			return q, errors.NewValidationFieldError("ordering",
				fmt.Sprintf("cannot order budgets by %q", field), errors.ErrCodeInvalidQuery)
		}
		q.OrderBy = column + " " + direction
	}

	return q, nil
}

func monthFormat(field string) func(interface{}) *errors.AppError {
	return func(value interface{}) *errors.AppError {
		s, ok := value.(string)
		if !ok || s == "" {
			return nil
		}
		if _, err := time.ParseInLocation(DateFormat, s, time.UTC); err != nil {
			return errors.NewValidationFieldError(field,
				fmt.Sprintf("%s must use YYYY-MM-DD", field), errors.ErrCodeInvalidMonth)
		}
		return nil
	}
}
