package postgres

import (
	"errors"
	"time"

	"github.com/empmanager/personnel-management/internal/auth"
	"gorm.io/gorm"
)

// userRow mirrors the users table. Profile links live in their own tables
// and are loaded alongside the account row.
type userRow struct {
	ID           int64     `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"column:email"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	IsSuperuser  bool      `gorm:"column:is_superuser;default:false"`
	IsStaff      bool      `gorm:"column:is_staff;default:false"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRow) TableName() string { return "users" }

type companyProfileRow struct {
	ID             int64  `gorm:"primaryKey"`
	UserID         int64  `gorm:"column:user_id;uniqueIndex"`
	DepartmentID   int64  `gorm:"column:department_id"`
	DepartmentName string `gorm:"->;column:department_name"`
}

func (companyProfileRow) TableName() string { return "company_profiles" }

type managerProfileRow struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"column:user_id;uniqueIndex"`
}

func (managerProfileRow) TableName() string { return "manager_profiles" }

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.Repository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetPrincipalByUsername(username string) (*auth.Principal, string, error) {
	var row userRow
	if err := r.db.Where("username = ?", username).First(&row).Error; err != nil {
		return nil, "", err
	}

	principal, err := r.assemble(&row)
	if err != nil {
		return nil, "", err
	}
	return principal, row.PasswordHash, nil
}

func (r *AuthRepository) GetPrincipalByID(userID int64) (*auth.Principal, error) {
	var row userRow
	if err := r.db.Where("id = ?", userID).First(&row).Error; err != nil {
		return nil, err
	}
	return r.assemble(&row)
}

func (r *AuthRepository) GetPasswordHash(userID int64) (string, error) {
	var row userRow
	if err := r.db.Select("id", "password_hash").Where("id = ?", userID).First(&row).Error; err != nil {
		return "", err
	}
	return row.PasswordHash, nil
}

func (r *AuthRepository) UpdatePassword(userID int64, passwordHash string) error {
	res := r.db.Model(&userRow{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// assemble attaches the optional profile links to the account row. A missing
// profile is not an error; the role resolver degrades gracefully without it.
func (r *AuthRepository) assemble(row *userRow) (*auth.Principal, error) {
	principal := &auth.Principal{
		ID:          row.ID,
		Username:    row.Username,
		Email:       row.Email,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		IsSuperuser: row.IsSuperuser,
		IsStaff:     row.IsStaff,
		IsActive:    row.IsActive,
	}

	var company companyProfileRow
	err := r.db.Table("company_profiles").
		Select("company_profiles.id, company_profiles.user_id, company_profiles.department_id, departments.name AS department_name").
		Joins("JOIN departments ON departments.id = company_profiles.department_id").
		Where("company_profiles.user_id = ?", row.ID).
		Take(&company).Error
	switch {
	case err == nil:
		principal.CompanyProfile = &auth.CompanyProfile{
			DepartmentID:   company.DepartmentID,
			DepartmentName: company.DepartmentName,
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no company profile, fine
	default:
		return nil, err
	}

	var managerProfile managerProfileRow
	err = r.db.Where("user_id = ?", row.ID).Take(&managerProfile).Error
	switch {
	case err == nil:
		var directions []string
		err = r.db.Table("manager_profile_directions").
			Select("directions.name").
			Joins("JOIN directions ON directions.id = manager_profile_directions.direction_id").
			Where("manager_profile_directions.manager_profile_id = ?", managerProfile.ID).
			Order("directions.name").
			Scan(&directions).Error
		if err != nil {
			return nil, err
		}
		principal.ManagerProfile = &auth.ManagerProfile{Directions: directions}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no manager profile, fine
	default:
		return nil, err
	}

	return principal, nil
}
