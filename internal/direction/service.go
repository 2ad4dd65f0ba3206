package direction

import (
	"errors"
	"log/slog"

	"github.com/empmanager/personnel-management/internal"
	"gorm.io/gorm"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "direction_service"),
	}
}

func (s *Service) ListDirections() ([]Direction, error) {
	directions, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list directions", "error", err)
		return nil, internal.NewInternalError("failed to list directions", err)
	}
	return directions, nil
}

func (s *Service) GetDirection(id int64) (*Direction, error) {
	d, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrDirectionNotFound
		}
		s.logger.Error("failed to get direction", "direction_id", id, "error", err)
		return nil, internal.NewInternalError("failed to get direction", err)
	}
	return d, nil
}
