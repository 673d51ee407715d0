package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub/server/internal/models"
)

func TestCreateAdmin_HashesPassword(t *testing.T) {
	db := setupTestDB(t)

	admin, err := db.CreateAdmin(models.Admin{
		Username: "ops",
		Email:    "ops@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "hunter2hunter2", admin.Password, "plaintext never stored")
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
}

func TestValidateCredentials(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.CreateAdmin(models.Admin{
		Username: "ops",
		Email:    "ops@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	admin, err := db.ValidateCredentials("ops", "correct-horse")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "ops", admin.Username)

	// Wrong password is an expected absence, not an error.
	admin, err = db.ValidateCredentials("ops", "wrong")
	require.NoError(t, err)
	assert.Nil(t, admin)

	admin, err = db.ValidateCredentials("nobody", "correct-horse")
	require.NoError(t, err)
	assert.Nil(t, admin)
}

func TestValidateCredentials_InactiveAdmin(t *testing.T) {
	db := setupTestDB(t)
	created, err := db.CreateAdmin(models.Admin{
		Username: "former",
		Email:    "former@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = db.UpdateAdmin(created.ID, map[string]interface{}{"is_active": false})
	require.NoError(t, err)

	admin, err := db.ValidateCredentials("former", "correct-horse")
	require.NoError(t, err)
	assert.Nil(t, admin, "deactivated admins cannot authenticate")

	_, err = db.GetAdmin(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAdmin_RehashesPassword(t *testing.T) {
	db := setupTestDB(t)
	created, err := db.CreateAdmin(models.Admin{
		Username: "ops",
		Email:    "ops@example.com",
		Password: "old-password",
	})
	require.NoError(t, err)

	updated, err := db.UpdateAdmin(created.ID, map[string]interface{}{"password": "new-password"})
	require.NoError(t, err)
	assert.NotEqual(t, "new-password", updated.Password)

	admin, err := db.ValidateCredentials("ops", "new-password")
	require.NoError(t, err)
	assert.NotNil(t, admin)

	admin, err = db.ValidateCredentials("ops", "old-password")
	require.NoError(t, err)
	assert.Nil(t, admin)
}

func TestEnsureDefaultAdmin(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.EnsureDefaultAdmin("root", "root@example.com", "bootstrap-pass"))

	admin, err := db.GetAdminByUsername("root")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, admin.Role)

	// Idempotent across restarts.
	require.NoError(t, db.EnsureDefaultAdmin("root", "root@example.com", "bootstrap-pass"))
	var count int64
	require.NoError(t, db.GetDB().Model(&models.Admin{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// A blank configuration provisions nothing.
	require.NoError(t, db.EnsureDefaultAdmin("", "", ""))
	require.NoError(t, db.GetDB().Model(&models.Admin{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
