package attendance

import (
	"time"

	"github.com/empmanager/personnel-management/internal"
)

type RecordAttendanceDTO struct {
	EmployeeID int64      `json:"employee_id"`
	Date       time.Time  `json:"date"`
	CheckIn    *time.Time `json:"check_in"`
	CheckOut   *time.Time `json:"check_out"`
	Status     Status     `json:"status"`
	Notes      string     `json:"notes"`
}

func (d RecordAttendanceDTO) Validate() error {
	if d.EmployeeID <= 0 {
		return internal.NewValidationFieldError("employee_id", "employee is required", internal.ErrCodeValidationFailed)
	}
	if d.Date.IsZero() {
		return internal.NewValidationFieldError("date", "date is required", internal.ErrCodeValidationFailed)
	}
	if d.Status != "" && !d.Status.IsValid() {
		return internal.NewValidationFieldError("status", "status must be present, absent, late or half-day", internal.ErrCodeValidationFailed)
	}
	if d.CheckIn != nil && d.CheckOut != nil && !d.CheckOut.After(*d.CheckIn) {
		return internal.NewValidationFieldError("check_out", "check-out must be after check-in", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateAttendanceDTO struct {
	CheckIn  *time.Time `json:"check_in,omitempty"`
	CheckOut *time.Time `json:"check_out,omitempty"`
	Status   *Status    `json:"status,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}

func (d UpdateAttendanceDTO) Validate() error {
	if d.Status != nil && !d.Status.IsValid() {
		return internal.NewValidationFieldError("status", "status must be present, absent, late or half-day", internal.ErrCodeValidationFailed)
	}
	if d.CheckIn != nil && d.CheckOut != nil && !d.CheckOut.After(*d.CheckIn) {
		return internal.NewValidationFieldError("check_out", "check-out must be after check-in", internal.ErrCodeValidationFailed)
	}
	return nil
}
