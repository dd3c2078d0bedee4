package user

import (
	"log/slog"

	errors "github.com/kab1012/budget-tracker/internal"
	userDatamodel "github.com/kab1012/budget-tracker/internal/core/datamodel/user"
)

type Repository interface {
	GetByID(userID int64) (*userDatamodel.User, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetByID(userID int64) (*User, error) {
	record, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return nil, errors.NewInternalError("failed to load user", err)
	}
	if record == nil {
		return nil, errors.ErrUserNotFound
	}
	return FromDataModel(record), nil
}
