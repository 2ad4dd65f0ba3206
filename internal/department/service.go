package department

import (
	"errors"
	"log/slog"

	"github.com/empmanager/personnel-management/internal"
	"github.com/empmanager/personnel-management/internal/auth"
	"gorm.io/gorm"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "department_service"),
	}
}

// ListDepartments applies the department visibility rule: admin and manager
// accounts browse every contracting company, an enterprise account sees only
// its own, and an employee sees the company its personnel record belongs to.
func (s *Service) ListDepartments(rc auth.RoleContext) ([]Department, error) {
	var (
		departments []Department
		err         error
	)
	switch rc.Role {
	case auth.RoleAdmin, auth.RoleManager:
		departments, err = s.repo.List()
	case auth.RoleEnterprise:
		departments, err = s.repo.ListByIDs([]int64{rc.DepartmentID})
	default:
		departments, err = s.repo.ListByOwner(rc.UserID)
	}
	if err != nil {
		s.logger.Error("failed to list departments", "role", rc.Role, "error", err)
		return nil, internal.NewInternalError("failed to list departments", err)
	}
	return departments, nil
}

func (s *Service) GetDepartment(rc auth.RoleContext, id int64) (*Department, error) {
	if rc.Role == auth.RoleEnterprise && rc.DepartmentID != id {
		return nil, internal.ErrForbidden
	}

	d, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrDepartmentNotFound
		}
		s.logger.Error("failed to get department", "department_id", id, "error", err)
		return nil, internal.NewInternalError("failed to get department", err)
	}

	if rc.Role == auth.RoleEmployee {
		visible, err := s.repo.ListByOwner(rc.UserID)
		if err != nil {
			return nil, internal.NewInternalError("failed to check department visibility", err)
		}
		for _, v := range visible {
			if v.ID == d.ID {
				return d, nil
			}
		}
		return nil, internal.ErrForbidden
	}

	return d, nil
}

func (s *Service) CreateDepartment(rc auth.RoleContext, dto CreateDepartmentDTO) (*Department, error) {
	if !rc.IsAdmin() {
		return nil, internal.ErrForbidden
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d := &Department{
		Name:        dto.Name,
		Manager:     dto.Manager,
		Description: dto.Description,
	}
	if err := s.repo.Create(d); err != nil {
		s.logger.Error("failed to create department", "name", dto.Name, "error", err)
		return nil, internal.NewInternalError("failed to create department", err)
	}

	s.logger.Info("department created", "department_id", d.ID, "name", d.Name)
	return d, nil
}

func (s *Service) UpdateDepartment(rc auth.RoleContext, id int64, dto UpdateDepartmentDTO) (*Department, error) {
	if !rc.IsAdmin() {
		return nil, internal.ErrForbidden
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrDepartmentNotFound
		}
		return nil, internal.NewInternalError("failed to get department", err)
	}

	if dto.Name != nil {
		d.Name = *dto.Name
	}
	if dto.Manager != nil {
		d.Manager = *dto.Manager
	}
	if dto.Description != nil {
		d.Description = *dto.Description
	}

	if err := s.repo.Update(d); err != nil {
		s.logger.Error("failed to update department", "department_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update department", err)
	}
	return d, nil
}

func (s *Service) DeleteDepartment(rc auth.RoleContext, id int64) error {
	if !rc.IsAdmin() {
		return internal.ErrForbidden
	}

	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.ErrDepartmentNotFound
		}
		return internal.NewInternalError("failed to get department", err)
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete department", "department_id", id, "error", err)
		return internal.NewInternalError("failed to delete department", err)
	}

	s.logger.Info("department deleted", "department_id", id)
	return nil
}
