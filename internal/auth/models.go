package auth

import (
	"time"

	"droneops/internal/common"
)

// Roles order from least to most privileged. Users register as viewers and
// stay inactive until a commander or admin approves them.
const (
	RoleViewer    = "viewer"
	RoleMaster    = "master"
	RoleCommander = "commander"
	RoleAdmin     = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleViewer, RoleMaster, RoleCommander, RoleAdmin:
		return true
	}
	return false
}

// CanManageEquipment reports whether the role may mutate inventory data.
// Viewers are read-only.
func CanManageEquipment(role string) bool {
	switch role {
	case RoleMaster, RoleCommander, RoleAdmin:
		return true
	}
	return false
}

// CanApproveUsers reports whether the role may activate pending accounts.
func CanApproveUsers(role string) bool {
	return role == RoleCommander || role == RoleAdmin
}

// User is a workshop account.
type User struct {
	common.BaseModel
	Username     string     `json:"username" gorm:"uniqueIndex;not null;size:50"`
	PasswordHash string     `json:"-" gorm:"not null;size:255"`
	FullName     string     `json:"full_name" gorm:"size:100"`
	Role         string     `json:"role" gorm:"size:20;not null;default:'viewer'"`
	IsActive     bool       `json:"is_active" gorm:"default:false"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

func (User) TableName() string {
	return "users"
}
