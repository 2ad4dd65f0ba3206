package employee

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/empmanager/personnel-management/internal"
	"github.com/empmanager/personnel-management/internal/auth"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "employee_service"),
	}
}

func (s *Service) ListEmployees(rc auth.RoleContext) ([]Employee, error) {
	employees, err := s.repo.List(rc)
	if err != nil {
		s.logger.Error("failed to list employees", "role", rc.Role, "error", err)
		return nil, internal.NewInternalError("failed to list employees", err)
	}
	return employees, nil
}

func (s *Service) GetEmployee(rc auth.RoleContext, id int64) (*Employee, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		s.logger.Error("failed to get employee", "employee_id", id, "error", err)
		return nil, internal.NewInternalError("failed to get employee", err)
	}

	// out-of-scope reads look like missing records, so record existence
	// never leaks across scopes
	if !rc.Allows(e) {
		return nil, internal.ErrEmployeeNotFound
	}
	return e, nil
}

func (s *Service) CreateEmployee(rc auth.RoleContext, dto CreateEmployeeDTO) (*Employee, error) {
	if !rc.IsStaff() {
		return nil, internal.ErrForbidden
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.ErrDuplicateEmail
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal.NewInternalError("failed to check email uniqueness", err)
	}

	salary := decimal.Zero
	if dto.Salary != nil {
		salary = *dto.Salary
	}
	status := dto.Status
	if status == "" {
		status = StatusActive
	}

	e := &Employee{
		Matricule:     dto.Matricule,
		FirstName:     dto.FirstName,
		LastName:      dto.LastName,
		Email:         dto.Email,
		Phone:         dto.Phone,
		Gender:        dto.Gender,
		BirthDate:     dto.BirthDate,
		HireDate:      dto.HireDate,
		DepartmentID:  dto.DepartmentID,
		Direction:     dto.Direction,
		Position:      dto.Position,
		Salary:        salary,
		CNPSNumber:    dto.CNPSNumber,
		Address:       dto.Address,
		City:          dto.City,
		MaritalStatus: dto.MaritalStatus,
		ChildrenCount: dto.ChildrenCount,
		Status:        status,
		UserID:        dto.UserID,
	}
	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create employee", "matricule", dto.Matricule, "error", err)
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	s.logger.Info("employee created", "employee_id", e.ID, "matricule", e.Matricule)
	return e, nil
}

func (s *Service) UpdateEmployee(rc auth.RoleContext, id int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if !rc.IsStaff() {
		return nil, internal.ErrForbidden
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, internal.NewInternalError("failed to get employee", err)
	}

	if dto.Email != nil && *dto.Email != e.Email {
		if existing, err := s.repo.GetByEmail(*dto.Email); err == nil && existing != nil {
			return nil, internal.ErrDuplicateEmail
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewInternalError("failed to check email uniqueness", err)
		}
		e.Email = *dto.Email
	}

	if dto.FirstName != nil {
		e.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		e.LastName = *dto.LastName
	}
	if dto.Phone != nil {
		e.Phone = *dto.Phone
	}
	if dto.Gender != nil {
		e.Gender = *dto.Gender
	}
	if dto.BirthDate != nil {
		e.BirthDate = dto.BirthDate
	}
	if dto.HireDate != nil {
		e.HireDate = *dto.HireDate
	}
	if dto.DepartmentID != nil {
		e.DepartmentID = *dto.DepartmentID
	}
	if dto.Direction != nil {
		e.Direction = *dto.Direction
	}
	if dto.Position != nil {
		e.Position = *dto.Position
	}
	if dto.Salary != nil {
		e.Salary = *dto.Salary
	}
	if dto.CNPSNumber != nil {
		e.CNPSNumber = *dto.CNPSNumber
	}
	if dto.Address != nil {
		e.Address = *dto.Address
	}
	if dto.City != nil {
		e.City = *dto.City
	}
	if dto.MaritalStatus != nil {
		e.MaritalStatus = *dto.MaritalStatus
	}
	if dto.ChildrenCount != nil {
		e.ChildrenCount = *dto.ChildrenCount
	}
	if dto.Status != nil {
		e.Status = *dto.Status
	}
	if dto.UserID != nil {
		e.UserID = dto.UserID
	}

	if err := s.repo.Update(e); err != nil {
		s.logger.Error("failed to update employee", "employee_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update employee", err)
	}
	return e, nil
}

func (s *Service) DeleteEmployee(rc auth.RoleContext, id int64) error {
	if !rc.IsAdmin() {
		return internal.ErrForbidden
	}

	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.ErrEmployeeNotFound
		}
		return internal.NewInternalError("failed to get employee", err)
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete employee", "employee_id", id, "error", err)
		return internal.NewInternalError("failed to delete employee", err)
	}

	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

// EmployeesByDepartment groups the scope-visible employees per contracting
// company, ordered by department name.
func (s *Service) EmployeesByDepartment(rc auth.RoleContext) ([]DepartmentGroup, error) {
	employees, err := s.repo.List(rc)
	if err != nil {
		s.logger.Error("failed to list employees", "role", rc.Role, "error", err)
		return nil, internal.NewInternalError("failed to list employees", err)
	}

	byID := make(map[int64]*DepartmentGroup)
	for _, e := range employees {
		group, ok := byID[e.DepartmentID]
		if !ok {
			group = &DepartmentGroup{
				DepartmentID:   e.DepartmentID,
				DepartmentName: e.DepartmentName,
			}
			byID[e.DepartmentID] = group
		}
		group.Employees = append(group.Employees, e)
	}

	groups := make([]DepartmentGroup, 0, len(byID))
	for _, g := range byID {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].DepartmentName < groups[j].DepartmentName
	})
	return groups, nil
}
