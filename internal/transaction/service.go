package transaction

import (
	"log/slog"
	"time"

	errors "github.com/kab1012/budget-tracker/internal"
	transactionDatamodel "github.com/kab1012/budget-tracker/internal/core/datamodel/transaction"
)

type RepositoryAPI interface {
	GetAll(userID int64, query ListQuery) ([]*transactionDatamodel.Transaction, error)
	GetByID(userID, id int64) (*transactionDatamodel.Transaction, error)
	Create(t *transactionDatamodel.Transaction) error
	Update(t *transactionDatamodel.Transaction) error
	Delete(userID, id int64) error
	// CategoryNames returns id -> name for every category the user owns.
	// Serves both the same-owner reference check and response decoration.
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

func (s *Service) List(userID int64, query ListQuery) ([]*Transaction, error) {
	records, err := s.repo.GetAll(userID, query)
	if err != nil {
		s.logger.Error("failed to list transactions", "error", err, "user_id", userID)
		return nil, errors.NewInternalError("failed to list transactions", err)
	}

	names, err := s.repo.CategoryNames(userID)
	if err != nil {
		s.logger.Error("failed to load category names", "error", err, "user_id", userID)
		return nil, errors.NewInternalError("failed to list transactions", err)
	}

	transactions := FromDataModelSlice(records)
	for _, t := range transactions {
		t.CategoryName = names[t.CategoryID]
	}
	return transactions, nil
}

func (s *Service) Get(userID, id int64) (*Transaction, error) {
	record, err := s.repo.GetByID(userID, id)
	if err != nil {
		s.logger.Error("failed to get transaction", "error", err, "user_id", userID, "transaction_id", id)
		return nil, errors.NewInternalError("failed to get transaction", err)
	}
	if record == nil {
		return nil, errors.ErrTransactionNotFound
	}

	t := FromDataModel(record)
	names, err := s.repo.CategoryNames(userID)
	if err != nil {
		return nil, errors.NewInternalError("failed to get transaction", err)
	}
	t.CategoryName = names[t.CategoryID]
	return t, nil
}

func (s *Service) Create(userID int64, dto CreateTransactionDTO) (*Transaction, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	names, err := s.repo.CategoryNames(userID)
	if err != nil {
		s.logger.Error("failed to load category names", "error", err, "user_id", userID)
		return nil, errors.NewInternalError("failed to create transaction", err)
	}
	categoryName, owned := names[dto.CategoryID]
	if !owned {
		// a category belonging to another user is indistinguishable from a
		// nonexistent one
		return nil, errors.NewValidationFieldError("category",
			"category does not exist", errors.ErrCodeInvalidCategory)
	}

	now := time.Now()
	record := &transactionDatamodel.Transaction{
		UserID:          userID,
		CategoryID:      dto.CategoryID,
		Amount:          *dto.Amount,
		TransactionType: dto.TransactionType,
		Description:     dto.Description,
		Date:            dto.ParsedDate(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create transaction", "error", err, "user_id", userID)
		return nil, errors.NewInternalError("failed to create transaction", err)
	}

	s.logger.Info("transaction created",
		"transaction_id", record.ID,
		"user_id", userID,
		"amount", record.Amount.StringFixed(2),
		"type", record.TransactionType)

	t := FromDataModel(record)
	t.CategoryName = categoryName
	return t, nil
}

func (s *Service) Update(userID, id int64, dto UpdateTransactionDTO) (*Transaction, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(userID, id)
	if err != nil {
		s.logger.Error("failed to get transaction for update", "error", err, "transaction_id", id)
		return nil, errors.NewInternalError("failed to update transaction", err)
	}
	if record == nil {
		return nil, errors.ErrTransactionNotFound
	}

	names, err := s.repo.CategoryNames(userID)
	if err != nil {
		return nil, errors.NewInternalError("failed to update transaction", err)
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
	if dto.TransactionType != nil {
		record.TransactionType = *dto.TransactionType
	}
	if dto.Description != nil {
		record.Description = *dto.Description
	}
	if dto.Date != nil {
		record.Date = dto.ParsedDate()
	}
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update transaction", "error", err, "transaction_id", id)
		return nil, errors.NewInternalError("failed to update transaction", err)
	}

	s.logger.Info("transaction updated", "transaction_id", id, "user_id", userID)

	t := FromDataModel(record)
	t.CategoryName = names[t.CategoryID]
	return t, nil
}

func (s *Service) Delete(userID, id int64) error {
	record, err := s.repo.GetByID(userID, id)
	if err != nil {
		s.logger.Error("failed to get transaction for delete", "error", err, "transaction_id", id)
		return errors.NewInternalError("failed to delete transaction", err)
	}
	if record == nil {
		return errors.ErrTransactionNotFound
	}

	if err := s.repo.Delete(userID, id); err != nil {
		s.logger.Error("failed to delete transaction", "error", err, "transaction_id", id)
		return errors.NewInternalError("failed to delete transaction", err)
	}

	s.logger.Info("transaction deleted", "transaction_id", id, "user_id", userID)
	return nil
}
