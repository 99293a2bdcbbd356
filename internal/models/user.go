package models

import "fmt"

type User struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FirstName    string `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string `gorm:"type:varchar(100)" json:"last_name"`
	PasswordHash string `gorm:"not null" json:"-"`
	IsSiteAdmin  bool   `gorm:"default:false" json:"is_site_admin"`
	LastLogin    int64  `gorm:"not null;default:0" json:"last_login"` // 0 - ни разу не входил
	TimeCreated  int64  `gorm:"not null" json:"time_created"`
}

func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// RoleAssignment - роль пользователя в контексте (действует и на потомков)
type RoleAssignment struct {
	BaseModel
	UserID    uint     `gorm:"not null;uniqueIndex:idx_role_user_ctx" json:"user_id"`
	ContextID uint     `gorm:"not null;uniqueIndex:idx_role_user_ctx;index" json:"context_id"`
	Role      RoleName `gorm:"type:varchar(32);not null;uniqueIndex:idx_role_user_ctx" json:"role"`
}
