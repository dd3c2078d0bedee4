package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// Month is stored as a date pinned to the first day of the month.
type Budget struct {
	ID         int64           `gorm:"primaryKey"`
	UserID     int64           `gorm:"column:user_id;not null;index"`
	CategoryID int64           `gorm:"column:category_id;not null;index"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric(10,2);not null"`
	Month      time.Time       `gorm:"column:month;type:date;not null"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (Budget) TableName() string {
	return "budgets"
}
