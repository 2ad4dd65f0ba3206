package auth

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*LoginResponse, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetPrincipal(userID int64) (*Principal, error)
	ChangePassword(userID int64, dto ChangePasswordDTO) error
}

// Repository is the data access contract for principals and their profile
// links. Implementations load company/manager profiles together with the
// account row.
type Repository interface {
	GetPrincipalByUsername(username string) (*Principal, string, error)
	GetPrincipalByID(userID int64) (*Principal, error)
	GetPasswordHash(userID int64) (string, error)
	UpdatePassword(userID int64, passwordHash string) error
}

type Service struct {
	repo       Repository
	tokens     TokenGenerator
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, tokens TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Authenticate validates credentials and returns tokens plus the enriched
// user payload. The role and its scope are resolved once here; failed
// attempts are logged without the submitted password.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	principal, storedHash, err := s.repo.GetPrincipalByUsername(dto.Username)
	if err != nil {
		s.logger.Warn("login failed: unknown username", "username", dto.Username)
		return nil, ErrInvalidCredentials
	}

	if err := VerifyPassword(storedHash, dto.Password); err != nil {
		s.logger.Warn("login failed: bad password", "username", dto.Username)
		return nil, ErrInvalidCredentials
	}

	if !principal.IsActive {
		return nil, ErrUserInactive
	}

	accessToken, err := s.tokens.GenerateAccessToken(principal.ID, principal.Email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(principal.ID, principal.Email)
	if err != nil {
		return nil, err
	}

	rc := ResolveRole(principal)

	user := LoginUser{
		ID:                principal.ID,
		Username:          principal.Username,
		Email:             principal.Email,
		Name:              principal.FullName(),
		Role:              rc.Role,
		ManagedDirections: rc.Directions,
	}
	if user.ManagedDirections == nil {
		user.ManagedDirections = []string{}
	}
	if rc.Role == RoleEnterprise {
		user.ManagedDepartment = &ManagedDepartment{ID: rc.DepartmentID, Name: rc.DepartmentName}
	}

	s.logger.Info("login succeeded", "username", principal.Username, "role", rc.Role)

	return &LoginResponse{
		User:    user,
		Access:  accessToken,
		Refresh: refreshToken,
	}, nil
}

// RefreshTokens validates a refresh token and rotates both tokens.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	principal, err := s.repo.GetPrincipalByID(claims.UserID)
	if err != nil {
		return AuthTokens{}, ErrInvalidToken
	}
	if !principal.IsActive {
		return AuthTokens{}, ErrUserInactive
	}

	accessToken, err := s.tokens.GenerateAccessToken(principal.ID, principal.Email)
	if err != nil {
		return AuthTokens{}, err
	}
	newRefreshToken, err := s.tokens.GenerateRefreshToken(principal.ID, principal.Email)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}

func (s *Service) GetPrincipal(userID int64) (*Principal, error) {
	return s.repo.GetPrincipalByID(userID)
}

// ChangePassword verifies the current password before storing the new hash.
func (s *Service) ChangePassword(userID int64, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	storedHash, err := s.repo.GetPasswordHash(userID)
	if err != nil {
		return ErrInvalidCredentials
	}

	if err := VerifyPassword(storedHash, dto.OldPassword); err != nil {
		s.logger.Warn("password change rejected: old password mismatch", "user_id", userID)
		return ErrInvalidCredentials
	}

	newHash, err := HashPassword(dto.NewPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(userID, newHash); err != nil {
		return err
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}
