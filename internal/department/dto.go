package department

import (
	"strings"

	"github.com/empmanager/personnel-management/internal"
)

type CreateDepartmentDTO struct {
	Name        string `json:"name"`
	Manager     string `json:"manager"`
	Description string `json:"description"`
}

func (d CreateDepartmentDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateDepartmentDTO struct {
	Name        *string `json:"name,omitempty"`
	Manager     *string `json:"manager,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (d UpdateDepartmentDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return internal.NewValidationFieldError("name", "name cannot be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}
