package auth

import (
	"testing"

	"droneops/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))
	return db
}

func TestRegisterStartsInactive(t *testing.T) {
	service := NewService(setupTestDB(t))

	user, err := service.Register("petro", "correct-horse", "Петро")
	require.NoError(t, err)
	assert.False(t, user.IsActive)
	assert.Equal(t, RoleViewer, user.Role)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	_, err = service.Register("petro", "another-pass", "")
	assert.True(t, common.IsValidation(err))

	_, err = service.Register("ab", "correct-horse", "")
	assert.True(t, common.IsValidation(err))

	_, err = service.Register("oksana", "short", "")
	assert.True(t, common.IsValidation(err))
}

func TestLoginRequiresApproval(t *testing.T) {
	service := NewService(setupTestDB(t))

	_, err := service.Register("petro", "correct-horse", "")
	require.NoError(t, err)

	_, _, err = service.Login("petro", "correct-horse")
	assert.True(t, common.IsValidation(err))

	_, err = service.Approve("petro", RoleMaster)
	require.NoError(t, err)

	token, user, err := service.Login("petro", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, RoleMaster, user.Role)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, RoleMaster, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service := NewService(setupTestDB(t))

	_, err := service.Register("petro", "correct-horse", "")
	require.NoError(t, err)
	_, err = service.Approve("petro", "")
	require.NoError(t, err)

	_, _, err = service.Login("petro", "wrong-pass")
	assert.True(t, common.IsValidation(err))

	_, _, err = service.Login("nobody", "correct-horse")
	assert.True(t, common.IsValidation(err))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	service := NewService(setupTestDB(t))

	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestSetRole(t *testing.T) {
	service := NewService(setupTestDB(t))

	_, err := service.Register("petro", "correct-horse", "")
	require.NoError(t, err)

	user, err := service.SetRole("petro", RoleCommander)
	require.NoError(t, err)
	assert.Equal(t, RoleCommander, user.Role)

	_, err = service.SetRole("petro", "tsar")
	assert.True(t, common.IsValidation(err))

	_, err = service.SetRole("nobody", RoleMaster)
	assert.True(t, common.IsNotFound(err))
}

func TestRolePermissions(t *testing.T) {
	assert.False(t, CanManageEquipment(RoleViewer))
	assert.True(t, CanManageEquipment(RoleMaster))
	assert.True(t, CanManageEquipment(RoleCommander))
	assert.True(t, CanManageEquipment(RoleAdmin))

	assert.False(t, CanApproveUsers(RoleMaster))
	assert.True(t, CanApproveUsers(RoleCommander))
}
