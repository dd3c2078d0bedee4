package category

import (
	"log/slog"

	errors "github.com/kab1012/budget-tracker/internal"
	categoryDatamodel "github.com/kab1012/budget-tracker/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	GetAll(userID int64, query ListQuery) ([]*categoryDatamodel.Category, error)
	GetByID(userID, id int64) (*categoryDatamodel.Category, error)
	Create(category *categoryDatamodel.Category) error
	Update(category *categoryDatamodel.Category) error
	Delete(userID, id int64) error
	CountDependents(userID, categoryID int64) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(userID int64, query ListQuery) ([]*Category, error) {
	records, err := s.repo.GetAll(userID, query)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err, "user_id", userID)
		return nil, errors.NewInternalError("failed to list categories", err)
	}
	return FromDataModelSlice(records), nil
}

func (s *Service) Get(userID, id int64) (*Category, error) {
	record, err := s.repo.GetByID(userID, id)
	if err != nil {
		s.logger.Error("failed to get category", "error", err, "user_id", userID, "category_id", id)
		return nil, errors.NewInternalError("failed to get category", err)
	}
	if record == nil {
		return nil, errors.ErrCategoryNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) Create(userID int64, dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	// owner comes from the authenticated identity, never from the payload
	cat := NewCategory(userID, dto.Name)

	record := ToDataModel(cat)
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create category", "error", err, "user_id", userID)
		return nil, errors.NewInternalError("failed to create category", err)
	}

	s.logger.Info("category created", "category_id", record.ID, "user_id", userID)
	return FromDataModel(record), nil
}

func (s *Service) Update(userID, id int64, dto UpdateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(userID, id)
	if err != nil {
		s.logger.Error("failed to get category for update", "error", err, "user_id", userID, "category_id", id)
		return nil, errors.NewInternalError("failed to update category", err)
	}
	if record == nil {
		return nil, errors.ErrCategoryNotFound
	}

	cat := FromDataModel(record)
	if dto.Name != nil {
		cat.Rename(*dto.Name)
	}

	updated := ToDataModel(cat)
	if err := s.repo.Update(updated); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id)
		return nil, errors.NewInternalError("failed to update category", err)
	}

	s.logger.Info("category updated", "category_id", id, "user_id", userID)
	return FromDataModel(updated), nil
}

// Delete removes a category. Deletion is restricted: a category that still
// has transactions or budgets attached cannot be removed.
func (s *Service) Delete(userID, id int64) error {
	record, err := s.repo.GetByID(userID, id)
	if err != nil {
		s.logger.Error("failed to get category for delete", "error", err, "user_id", userID, "category_id", id)
		return errors.NewInternalError("failed to delete category", err)
	}
	if record == nil {
		return errors.ErrCategoryNotFound
	}

	dependents, err := s.repo.CountDependents(userID, id)
	if err != nil {
		s.logger.Error("failed to count category dependents", "error", err, "category_id", id)
		return errors.NewInternalError("failed to delete category", err)
	}
	if dependents > 0 {
		s.logger.Warn("category delete blocked", "category_id", id, "dependents", dependents)
		return errors.ErrCategoryInUse
	}

	if err := s.repo.Delete(userID, id); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return errors.NewInternalError("failed to delete category", err)
	}

	s.logger.Info("category deleted", "category_id", id, "user_id", userID)
	return nil
}
