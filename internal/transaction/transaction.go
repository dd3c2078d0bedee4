package transaction

import (
	"time"

	transactionDatamodel "github.com/kab1012/budget-tracker/internal/core/datamodel/transaction"
	"github.com/shopspring/decimal"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// DateFormat is the wire format for transaction dates.
const DateFormat = "2006-01-02"

type Transaction struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"-"`
	CategoryID      int64           `json:"category"`
	CategoryName    string          `json:"category_name"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transaction_type"`
	Description     string          `json:"description"`
	Date            time.Time       `json:"date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (t *Transaction) IsIncome() bool {
	return t.TransactionType == TypeIncome
}

func (t *Transaction) IsExpense() bool {
	return t.TransactionType == TypeExpense
}

func (t *Transaction) ToResponse() TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		CategoryID:      t.CategoryID,
		CategoryName:    t.CategoryName,
		Amount:          t.Amount.StringFixed(2),
		TransactionType: t.TransactionType,
		Description:     t.Description,
		Date:            t.Date.Format(DateFormat),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func ToDataModel(t *Transaction) *transactionDatamodel.Transaction {
	return &transactionDatamodel.Transaction{
		ID:              t.ID,
		UserID:          t.UserID,
		CategoryID:      t.CategoryID,
		Amount:          t.Amount,
		TransactionType: t.TransactionType,
		Description:     t.Description,
		Date:            t.Date,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func FromDataModel(t *transactionDatamodel.Transaction) *Transaction {
	return &Transaction{
		ID:              t.ID,
		UserID:          t.UserID,
		CategoryID:      t.CategoryID,
		Amount:          t.Amount,
		TransactionType: t.TransactionType,
		Description:     t.Description,
		Date:            t.Date,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func FromDataModelSlice(transactions []*transactionDatamodel.Transaction) []*Transaction {
	result := make([]*Transaction, len(transactions))
	for i, t := range transactions {
		result[i] = FromDataModel(t)
	}
	return result
}
