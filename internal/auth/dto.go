package auth

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordDTO for authenticated password changes
type ChangePasswordDTO struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d LoginDTO) Validate() error {
	if d.Username == "" {
		return ValidationError{Msg: "username is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return ValidationError{Msg: "refresh_token is required"}
	}
	return nil
}

func (d ChangePasswordDTO) Validate() error {
	if d.OldPassword == "" {
		return ValidationError{Msg: "old_password is required"}
	}
	if d.NewPassword == "" {
		return ValidationError{Msg: "new_password is required"}
	}
	if len(d.NewPassword) < 8 {
		return ValidationError{Msg: "new password must be at least 8 characters"}
	}
	return nil
}

// ManagedDepartment identifies the department an enterprise account manages,
// echoed back in the login payload.
type ManagedDepartment struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LoginUser is the enriched user payload returned on login: the resolved
// role and its scope accompany the tokens so the client does not need a
// second round trip.
type LoginUser struct {
	ID                int64              `json:"id"`
	Username          string             `json:"username"`
	Email             string             `json:"email"`
	Name              string             `json:"name"`
	Role              Role               `json:"role"`
	ManagedDirections []string           `json:"managed_directions"`
	ManagedDepartment *ManagedDepartment `json:"managed_department"`
}

// LoginResponse bundles the user payload with both tokens.
type LoginResponse struct {
	User    LoginUser  `json:"user"`
	Access  string     `json:"access"`
	Refresh string     `json:"refresh"`
}
