package transaction

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

// TransactionResponse enumerates exactly the fields exposed per
// transaction. Amounts are serialized as fixed two-decimal strings.
type TransactionResponse struct {
	ID              int64     `json:"id"`
	CategoryID      int64     `json:"category"`
	CategoryName    string    `json:"category_name"`
	Amount          string    `json:"amount"`
	TransactionType string    `json:"transaction_type"`
	Description     string    `json:"description"`
	Date            string    `json:"date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type TransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

type CreateTransactionDTO struct {
	CategoryID      int64            `json:"category"`
	Amount          *decimal.Decimal `json:"amount"`
	TransactionType string           `json:"transaction_type"`
	Description     string           `json:"description"`
	Date            string           `json:"date"`
}

func (dto *CreateTransactionDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("category", dto.CategoryID).Required()
	v.Field("amount", dto.Amount).Required().Money()
	v.Field("transaction_type", dto.TransactionType).Required().
		OneOf(errors.ErrCodeInvalidType, TypeIncome, TypeExpense)
	v.Field("date", dto.Date).Required().Custom(dateFormat("date"))
	return v.Validate()
}

// ParsedDate returns the calendar date at UTC midnight. Call after Validate.
func (dto *CreateTransactionDTO) ParsedDate() time.Time {
	d, _ := time.ParseInLocation(DateFormat, dto.Date, time.UTC)
	return d
}

type UpdateTransactionDTO struct {
	CategoryID      *int64           `json:"category"`
	Amount          *decimal.Decimal `json:"amount"`
	TransactionType *string          `json:"transaction_type"`
	Description     *string          `json:"description"`
	Date            *string          `json:"date"`
}

func (dto *UpdateTransactionDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.CategoryID != nil {
		v.Field("category", *dto.CategoryID).Required()
	}
	if dto.Amount != nil {
		v.Field("amount", dto.Amount).Money()
	}
	if dto.TransactionType != nil {
		v.Field("transaction_type", *dto.TransactionType).Required().
			OneOf(errors.ErrCodeInvalidType, TypeIncome, TypeExpense)
	}
	if dto.Date != nil {
		v.Field("date", *dto.Date).Required().Custom(dateFormat("date"))
	}
	return v.Validate()
}

func (dto *UpdateTransactionDTO) ParsedDate() time.Time {
	d, _ := time.ParseInLocation(DateFormat, *dto.Date, time.UTC)
	return d
}

var orderings = map[string]string{
	"date":       "date",
	"amount":     "amount",
	"created_at": "created_at",
}

// ListQuery is the allow-listed filter/search/ordering surface for
// transaction listings. Anything outside it is rejected up front.
type ListQuery struct {
	TransactionType string
	CategoryID      int64
	Date            *time.Time
	Search          string
	OrderBy         string
}

func ParseListQuery(values url.Values) (ListQuery, *errors.AppError) {
	q := ListQuery{
		Search:  strings.TrimSpace(values.Get("search")),
		OrderBy: "date DESC",
	}

	if tt := values.Get("transaction_type"); tt != "" {
		if tt != TypeIncome && tt != TypeExpense {
			return q, errors.NewValidationFieldError("transaction_type",
				fmt.Sprintf("unknown transaction type %q", tt), errors.ErrCodeInvalidType)
		}
		q.TransactionType = tt
	}

	if cat := values.Get("category"); cat != "" {
		id, err := strconv.ParseInt(cat, 10, 64)
		if err != nil || id <= 0 {
			return q, errors.NewValidationFieldError("category",
				"category filter must be a positive integer", errors.ErrCodeInvalidQuery)
		}
		q.CategoryID = id
	}

	if date := values.Get("date"); date != "" {
		d, err := time.ParseInLocation(DateFormat, date, time.UTC)
		if err != nil {
			return q, errors.NewValidationFieldError("date",
				"date filter must use YYYY-MM-DD", errors.ErrCodeInvalidDate)
		}
		q.Date = &d
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
				fmt.Sprintf("cannot order transactions by %q", field), errors.ErrCodeInvalidQuery)
		}
		q.OrderBy = column + " " + direction
	}

	return q, nil
}

func dateFormat(field string) func(interface{}) *errors.AppError {
	return func(value interface{}) *errors.AppError {
		s, ok := value.(string)
		if !ok || s == "" {
			return nil
		}
		if _, err := time.ParseInLocation(DateFormat, s, time.UTC); err != nil {
			return errors.NewValidationFieldError(field,
				fmt.Sprintf("%s must use YYYY-MM-DD", field), errors.ErrCodeInvalidDate)
		}
		return nil
	}
}
