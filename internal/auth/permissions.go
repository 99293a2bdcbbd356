package auth

import (
	"broadcast_backend/internal/models"
	"broadcast_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type Capability string

const (
	CapabilityCreateBroadcasts Capability = "broadcast:create"
	CapabilityViewBroadcasts   Capability = "broadcast:view"
)

// RoleCapabilities - какие capability дает роль в контексте назначения и во всех его потомках
var RoleCapabilities = map[models.RoleName][]Capability{
	models.RoleManager: {
		CapabilityCreateBroadcasts,
		CapabilityViewBroadcasts,
	},
	models.RoleEditingTeacher: {
		CapabilityCreateBroadcasts,
		CapabilityViewBroadcasts,
	},
	models.RoleTeacher: {
		CapabilityViewBroadcasts,
	},
	models.RoleStudent: {
		CapabilityViewBroadcasts,
	},
}

// authenticatedCapabilities выдаются любому вошедшему пользователю на уровне сайта
var authenticatedCapabilities = []Capability{
	CapabilityViewBroadcasts,
}

// Actor - кто выполняет запрос. UserID == 0 - гость.
type Actor struct {
	UserID    uint
	SiteAdmin bool
}

func (a Actor) IsGuest() bool {
	return a.UserID == 0
}

// HasPermission проверяет есть ли у роли указанная capability
func HasPermission(role models.RoleName, capability Capability) bool {
	return containsCapability(RoleCapabilities[role], capability)
}

func containsCapability(list []Capability, capability Capability) bool {
	for _, c := range list {
		if c == capability {
			return true
		}
	}
	return false
}

// AncestorResolver возвращает цепочку контекстов от корня до самого контекста
type AncestorResolver interface {
	AncestorIDs(db *gorm.DB, contextID uint) ([]uint, error)
}

type RoleFinder interface {
	FindRolesInContexts(db *gorm.DB, userID uint, contextIDs []uint) ([]models.RoleAssignment, error)
}

// Checker вычисляет capability пользователя в контексте по назначенным ролям
type Checker struct {
	ancestors AncestorResolver
	roles     RoleFinder
}

func NewChecker(ancestors AncestorResolver, roles RoleFinder) *Checker {
	return &Checker{ancestors: ancestors, roles: roles}
}

func (c *Checker) HasCapability(db *gorm.DB, actor Actor, contextID uint, capability Capability) (bool, error) {
	if actor.SiteAdmin {
		// контекст все равно должен существовать
		if _, err := c.ancestors.AncestorIDs(db, contextID); err != nil {
			return false, err
		}
		return true, nil
	}

	chain, err := c.ancestors.AncestorIDs(db, contextID)
	if err != nil {
		return false, err
	}
	if actor.IsGuest() {
		return false, nil
	}
	if containsCapability(authenticatedCapabilities, capability) {
		return true, nil
	}

	assignments, err := c.roles.FindRolesInContexts(db, actor.UserID, chain)
	if err != nil {
		return false, apperrors.DatabaseError(err)
	}
	for _, a := range assignments {
		if HasPermission(a.Role, capability) {
			return true, nil
		}
	}
	return false, nil
}

// Require - то же самое, но отсутствие права возвращается как ErrPermissionDenied
func (c *Checker) Require(db *gorm.DB, actor Actor, contextID uint, capability Capability) error {
	ok, err := c.HasCapability(db, actor, contextID, capability)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrPermissionDenied.WithDetails(map[string]interface{}{
			"capability": capability,
			"contextid":  contextID,
		})
	}
	return nil
}
