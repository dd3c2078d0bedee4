package postgres

import (
	"github.com/kab1012/budget-tracker/internal/category"
	budgetDatamodel "github.com/kab1012/budget-tracker/internal/core/datamodel/budget"
	categoryDatamodel "github.com/kab1012/budget-tracker/internal/core/datamodel/category"
	transactionDatamodel "github.com/kab1012/budget-tracker/internal/core/datamodel/transaction"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetAll(userID int64, query category.ListQuery) ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	tx := r.db.Where("user_id = ?", userID)
	if query.Search != "" {
		tx = tx.Where("name LIKE ?", "%"+query.Search+"%")
	}
	err := tx.Order(query.OrderBy).Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByID(userID, id int64) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&cat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(cat *categoryDatamodel.Category) error {
	return r.db.Create(cat).Error
}

func (r *CategoryRepository) Update(cat *categoryDatamodel.Category) error {
	return r.db.Save(cat).Error
}

func (r *CategoryRepository) Delete(userID, id int64) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&categoryDatamodel.Category{}).Error
}

// CountDependents counts transactions and budgets still referencing the
// category, used to enforce the restrict-delete policy.
func (r *CategoryRepository) CountDependents(userID, categoryID int64) (int64, error) {
	var transactions int64
	err := r.db.Model(&transactionDatamodel.Transaction{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&transactions).Error
	if err != nil {
		return 0, err
	}

	var budgets int64
	err = r.db.Model(&budgetDatamodel.Budget{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&budgets).Error
	if err != nil {
		return 0, err
	}

	return transactions + budgets, nil
}
