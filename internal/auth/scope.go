package auth

import (
	"slices"

	"gorm.io/gorm"
)

// Scoped is implemented by every record kind subject to role-based
// visibility. Employee, leave and attendance records reach the same three
// concepts through different fields; the interface normalizes them so the
// filtering rule exists once.
type Scoped interface {
	// DepartmentRef returns the id of the contracting company the record
	// belongs to, false when unassigned.
	DepartmentRef() (int64, bool)
	// DirectionRef returns the ministry direction name, empty when unset.
	DirectionRef() string
	// OwnerRef returns the id of the principal owning the record, false
	// when the record is not linked to an account.
	OwnerRef() (int64, bool)
}

// Allows reports whether a single record is visible to the resolved role.
//
// A manager with an empty direction set sees nothing: the scope fails
// closed rather than widening to everything.
func (rc RoleContext) Allows(record Scoped) bool {
	switch rc.Role {
	case RoleAdmin:
		return true
	case RoleEnterprise:
		dept, ok := record.DepartmentRef()
		return ok && dept == rc.DepartmentID
	case RoleManager:
		if len(rc.Directions) == 0 {
			return false
		}
		return slices.Contains(rc.Directions, record.DirectionRef())
	default:
		owner, ok := record.OwnerRef()
		return ok && owner == rc.UserID
	}
}

// FilterByScope narrows a materialized record set to what the role may see.
// The predicate is the same for every entity kind.
func FilterByScope[T Scoped](records []T, rc RoleContext) []T {
	if rc.Role == RoleAdmin {
		return records
	}
	filtered := make([]T, 0, len(records))
	for _, r := range records {
		if rc.Allows(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// ScopeFields maps the scope concepts onto the column paths of a concrete
// table, so repositories can push the same visibility rule into SQL.
// Employee rows carry the columns directly; leave and attendance rows reach
// them through a join on employees.
type ScopeFields struct {
	DepartmentColumn string
	DirectionColumn  string
	OwnerColumn      string
}

var (
	// EmployeeScopeFields applies to queries rooted at the employees table.
	EmployeeScopeFields = ScopeFields{
		DepartmentColumn: "employees.department_id",
		DirectionColumn:  "employees.direction",
		OwnerColumn:      "employees.user_id",
	}
	// LeaveScopeFields and AttendanceScopeFields expect the repository to
	// join employees on the owning row.
	LeaveScopeFields      = EmployeeScopeFields
	AttendanceScopeFields = EmployeeScopeFields
)

// QueryScope renders the visibility rule as a GORM scope using the given
// field mapping. Semantics match Allows exactly, including the fail-closed
// empty-direction manager case.
func (rc RoleContext) QueryScope(fields ScopeFields) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch rc.Role {
		case RoleAdmin:
			return db
		case RoleEnterprise:
			return db.Where(fields.DepartmentColumn+" = ?", rc.DepartmentID)
		case RoleManager:
			if len(rc.Directions) == 0 {
				return db.Where("1 = 0")
			}
			return db.Where(fields.DirectionColumn+" IN ?", rc.Directions)
		default:
			return db.Where(fields.OwnerColumn+" = ?", rc.UserID)
		}
	}
}
