package postgres

import (
	"time"

	"github.com/kab1012/budget-tracker/internal/budget"
	budgetDatamodel "github.com/kab1012/budget-tracker/internal/core/datamodel/budget"
	categoryDatamodel "github.com/kab1012/budget-tracker/internal/core/datamodel/category"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) GetAll(userID int64, query budget.ListQuery) ([]*budgetDatamodel.Budget, error) {
	var budgets []*budgetDatamodel.Budget

	tx := r.db.Model(&budgetDatamodel.Budget{}).
		Where("budgets.user_id = ?", userID)

	if query.CategoryID != 0 {
		tx = tx.Where("budgets.category_id = ?", query.CategoryID)
	}
	if query.Month != nil {
		tx = tx.Where("budgets.month = ?", *query.Month)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		tx = tx.Joins("JOIN categories ON categories.id = budgets.category_id").
			Where("categories.name LIKE ?", pattern)
	}

	err := tx.Order("budgets." + query.OrderBy).Find(&budgets).Error
	return budgets, err
}

func (r *BudgetRepository) GetByID(userID, id int64) (*budgetDatamodel.Budget, error) {
	var b budgetDatamodel.Budget
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&b).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BudgetRepository) Create(b *budgetDatamodel.Budget) error {
	return r.db.Create(b).Error
}

func (r *BudgetRepository) Update(b *budgetDatamodel.Budget) error {
	return r.db.Save(b).Error
}

func (r *BudgetRepository) Delete(userID, id int64) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&budgetDatamodel.Budget{}).Error
}

func (r *BudgetRepository) CategoryNames(userID int64) (map[int64]string, error) {
	var categories []*categoryDatamodel.Category
	if err := r.db.Where("user_id = ?", userID).Find(&categories).Error; err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

// SumInMonth adds up budget amounts whose month falls in [from, to).
// Rows are summed in decimal space; duplicate (category, month) budgets
// are counted additively.
func (r *BudgetRepository) SumInMonth(userID int64, from, to time.Time) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := r.db.Model(&budgetDatamodel.Budget{}).
		Where("user_id = ? AND month >= ? AND month < ?", userID, from, to).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total, nil
}
