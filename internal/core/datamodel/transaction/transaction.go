package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID              int64           `gorm:"primaryKey"`
	UserID          int64           `gorm:"column:user_id;not null;index"`
	CategoryID      int64           `gorm:"column:category_id;not null;index"`
	Amount          decimal.Decimal `gorm:"column:amount;type:numeric(10,2);not null"`
	TransactionType string          `gorm:"column:transaction_type;not null"`
	Description     string          `gorm:"column:description"`
	Date            time.Time       `gorm:"column:date;type:date;not null"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
