package leave

import (
	"strings"
	"time"

	"github.com/empmanager/personnel-management/internal"
)

type SubmitLeaveDTO struct {
	// EmployeeID may be omitted by employee principals, whose own personnel
	// record is resolved from the session. Staff must name the employee.
	EmployeeID int64     `json:"employee_id,omitempty"`
	Type       Type      `json:"leave_type"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Reason     string    `json:"reason"`
}

func (d SubmitLeaveDTO) Validate() error {
	if !d.Type.IsValid() {
		return internal.NewValidationError("leave type must be paid, sick, unpaid, parental or other", internal.ErrCodeInvalidLeaveType)
	}
	if d.StartDate.IsZero() || d.EndDate.IsZero() {
		return internal.NewValidationError("start and end dates are required", internal.ErrCodeInvalidDateRange)
	}
	if truncateToDay(d.EndDate).Before(truncateToDay(d.StartDate)) {
		return internal.ErrInvalidDateRange
	}
	if strings.TrimSpace(d.Reason) == "" {
		return internal.NewValidationError("a reason is required", internal.ErrCodeMissingReason)
	}
	return nil
}
