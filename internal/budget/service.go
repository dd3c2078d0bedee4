package budget

import (
	"log/slog"
	"time"

	errors "github.com/kab1012/budget-tracker/internal"
	budgetDatamodel "github.com/kab1012/budget-tracker/internal/core/datamodel/budget"
)

type RepositoryAPI interface {
	GetAll(userID int64, query ListQuery) ([]*budgetDatamodel.Budget, error)
	GetByID(userID, id int64) (*budgetDatamodel.Budget, error)
	Create(b *budgetDatamodel.Budget) error
	Update(b *budgetDatamodel.Budget) error
	Delete(userID, id int64) error
	CategoryNames(userID int64) (map[int64]string, error)
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

func (s *Service) List(userID int64, query ListQuery) ([]*Budget, error) {
	records, err := s.repo.GetAll(userID, query)
	if err != nil {
		s.logger.Error("failed to list budgets", "error", err, "user_id", userID)
		return nil, errors.NewInternalError("failed to list budgets", err)
	}

	names, err := s.repo.CategoryNames(userID)
	if err != nil {
		s.logger.Error("failed to load category names", "error", err, "user_id", userID)
		return nil, errors.NewInternalError("failed to list budgets", err)
	}

	budgets := FromDataModelSlice(records)
	for _, b := range budgets {
		b.CategoryName = names[b.CategoryID]
	}
	return budgets, nil
}

func (s *Service) Get(userID, id int64) (*Budget, error) {
	record, err := s.repo.GetByID(userID, id)
	if err != nil {
		s.logger.Error("failed to get budget", "error", err, "user_id", userID, "budget_id", id)
		return nil, errors.NewInternalError("failed to get budget", err)
	}
	if record == nil {
		return nil, errors.ErrBudgetNotFound
	}

	b := FromDataModel(record)
	names, err := s.repo.CategoryNames(userID)
	if err != nil {
		return nil, errors.NewInternalError("failed to get budget", err)
	}
	b.CategoryName = names[b.CategoryID]
	return b, nil
}

// Create persists a budget row. Duplicate (category, month) pairs are
// allowed; the summary sums them additively.
func (s *Service) Create(userID int64, dto CreateBudgetDTO) (*Budget, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	names, err := s.repo.CategoryNames(userID)
	if err != nil {
		s.logger.Error("failed to load category names", "error", err, "user_id", userID)
		return nil, errors.NewInternalError("failed to create budget", err)
	}
	categoryName, owned := names[dto.CategoryID]
	if !owned {
		return nil, errors.NewValidationFieldError("category",
			"category does not exist", errors.ErrCodeInvalidCategory)
	}

	now := time.Now()
	record := &budgetDatamodel.Budget{
		UserID:     userID,
		CategoryID: dto.CategoryID,
		Amount:     *dto.Amount,
		Month:      dto.ParsedMonth(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create budget", "error", err, "user_id", userID)
		return nil, errors.NewInternalError("failed to create budget", err)
	}

	s.logger.Info("budget created",
		"budget_id", record.ID,
		"user_id", userID,
		"amount", record.Amount.StringFixed(2),
		"month", record.Month.Format(DateFormat))

	b := FromDataModel(record)
	b.CategoryName = categoryName
	return b, nil
}

func (s *Service) Update(userID, id int64, dto UpdateBudgetDTO) (*Budget, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(userID, id)
	if err != nil {
		s.logger.Error("failed to get budget for update", "error", err, "budget_id", id)
		return nil, errors.NewInternalError("failed to update budget", err)
	}
	if record == nil {
		return nil, errors.ErrBudgetNotFound
	}

	names, err := s.repo.CategoryNames(userID)
	if err != nil {
		return nil, errors.NewInternalError("failed to update budget", err)
	}

	if dto.CategoryID != nil {
		if _, owned := names[*dto.CategoryID]; !owned {
			return nil, errors.NewValidationFieldError("category",
				"category does not exist", errors.ErrCodeInvalidCategory)
		}
		record.CategoryID = *dto.CategoryID
	}
	if dto.Amount != nil {
		record.Amount = *dto.Amount
	}
	if dto.Month != nil {
		record.Month = dto.ParsedMonth()
	}
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update budget", "error", err, "budget_id", id)
		return nil, errors.NewInternalError("failed to update budget", err)
	}

	s.logger.Info("budget updated", "budget_id", id, "user_id", userID)

	b := FromDataModel(record)
	b.CategoryName = names[b.CategoryID]
	return b, nil
}

func (s *Service) Delete(userID, id int64) error {
	record, err := s.repo.GetByID(userID, id)
	if err != nil {
		s.logger.Error("failed to get budget for delete", "error", err, "budget_id", id)
		return errors.NewInternalError("failed to delete budget", err)
	}
	if record == nil {
		return errors.ErrBudgetNotFound
	}

	if err := s.repo.Delete(userID, id); err != nil {
		s.logger.Error("failed to delete budget", "error", err, "budget_id", id)
		return errors.NewInternalError("failed to delete budget", err)
	}

	s.logger.Info("budget deleted", "budget_id", id, "user_id", userID)
	return nil
}
