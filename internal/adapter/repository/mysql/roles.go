package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Role and UserRole back the identity store the authorization layer resolves
// actor roles from.
type Role struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	Name      string    `gorm:"size:32;uniqueIndex:ux_roles_name" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Role) TableName() string { return "roles" }

type UserRole struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID    string    `gorm:"size:32;index:idx_user_roles_user" json:"user_id"`
	RoleID    uint64    `gorm:"index:idx_user_roles_role" json:"role_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UserRole) TableName() string { return "user_roles" }

type RoleResolver struct{ db *gorm.DB }

func NewRoleResolver(db *gorm.DB) *RoleResolver {
	return &RoleResolver{db: db}
}

func (r *RoleResolver) Roles(ctx context.Context, userID string) ([]string, error) {
	var names []string
	res := r.db.WithContext(ctx).
		Table("user_roles ur").
		Select("r.name").
		Joins("join roles r on r.id = ur.role_id").
		Where("ur.user_id = ?", userID).
		Order("r.name asc").
		Scan(&names)
	return names, res.Error
}

// Grant assigns a named role to a user, creating the role row if missing.
// Used by seed tooling and tests.
func (r *RoleResolver) Grant(ctx context.Context, userID, roleName string) error {
	var role Role
	err := r.db.WithContext(ctx).Where("name = ?", roleName).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		role = Role{Name: roleName}
		err = r.db.WithContext(ctx).Create(&role).Error
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&UserRole{UserID: userID, RoleID: role.ID}).Error
}
