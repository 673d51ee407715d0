package database

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"estatehub/server/internal/models"
)

// GetAdmin returns an active admin by id.
func (d *Database) GetAdmin(id uint) (*models.Admin, error) {
	var admin models.Admin
	err := d.db.Where("id = ? AND is_active = ?", id, true).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

// GetAdminByUsername returns an active admin by username.
func (d *Database) GetAdminByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	err := d.db.Where("username = ? AND is_active = ?", username, true).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

// GetAdminByEmail returns an active admin by email.
func (d *Database) GetAdminByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	err := d.db.Where("email = ? AND is_active = ?", email, true).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

// CreateAdmin stores a new admin with a bcrypt-hashed password.
func (d *Database) CreateAdmin(admin models.Admin) (*models.Admin, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	admin.Password = string(hashed)
	if admin.Role == "" {
		admin.Role = models.RoleAdmin
	}
	admin.IsActive = true

	if err := d.db.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return &admin, nil
}

// UpdateAdmin applies the given column updates; a "password" entry is
// re-hashed before storage.
func (d *Database) UpdateAdmin(id uint, updates map[string]interface{}) (*models.Admin, error) {
	if password, ok := updates["password"].(string); ok {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = string(hashed)
	}

	if len(updates) > 0 {
		result := d.db.Model(&models.Admin{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update admin: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	var admin models.Admin
	if err := d.db.First(&admin, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

// ValidateCredentials checks a username/password pair against the stored
// hash. A wrong password, unknown username or deactivated account yields
// (nil, nil): absence is an expected outcome, not an error.
func (d *Database) ValidateCredentials(username, password string) (*models.Admin, error) {
	admin, err := d.GetAdminByUsername(username)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, nil
	}
	return admin, nil
}

// EnsureDefaultAdmin provisions the bootstrap account when the username is
// not taken yet. Safe to call on every startup.
func (d *Database) EnsureDefaultAdmin(username, email, password string) error {
	if username == "" || password == "" {
		return nil
	}

	var count int64
	if err := d.db.Model(&models.Admin{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err := d.CreateAdmin(models.Admin{
		Username: username,
		Email:    email,
		Password: password,
		Role:     models.RoleSuperAdmin,
	})
	return err
}
