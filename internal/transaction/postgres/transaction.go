package postgres

import (
	"time"

	categoryDatamodel "github.com/kab1012/budget-tracker/internal/core/datamodel/category"
	transactionDatamodel "github.com/kab1012/budget-tracker/internal/core/datamodel/transaction"
	"github.com/kab1012/budget-tracker/internal/transaction"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) GetAll(userID int64, query transaction.ListQuery) ([]*transactionDatamodel.Transaction, error) {
	var transactions []*transactionDatamodel.Transaction

	tx := r.db.Model(&transactionDatamodel.Transaction{}).
		Where("transactions.user_id = ?", userID)

	if query.TransactionType != "" {
		tx = tx.Where("transactions.transaction_type = ?", query.TransactionType)
	}
	if query.CategoryID != 0 {
		tx = tx.Where("transactions.category_id = ?", query.CategoryID)
	}
	if query.Date != nil {
		tx = tx.Where("transactions.date = ?", *query.Date)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		tx = tx.Joins("JOIN categories ON categories.id = transactions.category_id").
			Where("transactions.description LIKE ? OR categories.name LIKE ?", pattern, pattern)
	}

	err := tx.Order("transactions." + query.OrderBy).Find(&transactions).Error
	return transactions, err
}

func (r *TransactionRepository) GetByID(userID, id int64) (*transactionDatamodel.Transaction, error) {
	var t transactionDatamodel.Transaction
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) Create(t *transactionDatamodel.Transaction) error {
	return r.db.Create(t).Error
}

func (r *TransactionRepository) Update(t *transactionDatamodel.Transaction) error {
	return r.db.Save(t).Error
}

func (r *TransactionRepository) Delete(userID, id int64) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&transactionDatamodel.Transaction{}).Error
}

func (r *TransactionRepository) CategoryNames(userID int64) (map[int64]string, error) {
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

// SumByTypeInMonth adds up transaction amounts of one type inside the
// half-open interval [from, to). Summation happens in decimal space, not
// in SQL, so no driver coerces the numeric column through a float.
func (r *TransactionRepository) SumByTypeInMonth(userID int64, transactionType string, from, to time.Time) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := r.db.Model(&transactionDatamodel.Transaction{}).
		Where("user_id = ? AND transaction_type = ? AND date >= ? AND date < ?",
			userID, transactionType, from, to).
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
