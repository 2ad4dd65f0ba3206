package auth

import "context"

// Role is derived per request from a principal's flags and profile links.
// It is never stored.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleEnterprise Role = "entreprise"
	RoleManager    Role = "manager"
	RoleEmployee   Role = "employee"
)

// RoleContext bundles a resolved role with the data needed to scope queries:
// the department for enterprise accounts, the supervised direction names for
// managers, and the principal's own id for employees.
type RoleContext struct {
	Role           Role     `json:"role"`
	UserID         int64    `json:"user_id"`
	DepartmentID   int64    `json:"department_id,omitempty"`
	DepartmentName string   `json:"department_name,omitempty"`
	Directions     []string `json:"directions,omitempty"`
}

// ResolveRole determines the role and visibility scope of a principal.
// First match wins, and the ordering is load-bearing:
//
//  1. superuser            -> admin, unrestricted. A superuser that also
//     carries a company profile is still admin.
//  2. company profile set  -> entreprise, scoped to that department.
//  3. staff flag           -> manager, scoped to its supervised directions
//     (empty set when no manager profile exists).
//  4. otherwise            -> employee, scoped to the principal itself.
//
// Pure function of the principal value; every principal resolves to exactly
// one role and missing profiles never produce an error.
func ResolveRole(p *Principal) RoleContext {
	if p.IsSuperuser {
		return RoleContext{Role: RoleAdmin, UserID: p.ID}
	}

	if p.CompanyProfile != nil {
		return RoleContext{
			Role:           RoleEnterprise,
			UserID:         p.ID,
			DepartmentID:   p.CompanyProfile.DepartmentID,
			DepartmentName: p.CompanyProfile.DepartmentName,
		}
	}

	if p.IsStaff {
		var directions []string
		if p.ManagerProfile != nil {
			directions = p.ManagerProfile.Directions
		}
		return RoleContext{Role: RoleManager, UserID: p.ID, Directions: directions}
	}

	return RoleContext{Role: RoleEmployee, UserID: p.ID}
}

// RoleContextFromContext resolves the role of the authenticated principal
// carried by the request context.
func RoleContextFromContext(ctx context.Context) (RoleContext, bool) {
	principal, ok := PrincipalFromContext(ctx)
	if !ok || principal == nil {
		return RoleContext{}, false
	}
	return ResolveRole(principal), true
}

// IsStaff reports whether the role may take part in the leave approval
// workflow (reject, first-tier validation).
func (rc RoleContext) IsStaff() bool {
	return rc.Role == RoleAdmin || rc.Role == RoleManager
}

func (rc RoleContext) IsAdmin() bool {
	return rc.Role == RoleAdmin
}
