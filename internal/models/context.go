package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Context - узел иерархии сайт -> категория -> курс -> модуль.
// Path хранит материализованный путь из id: "/1/4/9".
type Context struct {
	BaseModel
	ContextLevel ContextLevel `gorm:"not null;index:idx_context_instance,unique" json:"context_level"`
	InstanceID   uint         `gorm:"not null;index:idx_context_instance,unique" json:"instance_id"`
	Path         string       `gorm:"type:varchar(255);index" json:"path"`
	Depth        int          `gorm:"not null" json:"depth"`
	Name         string       `gorm:"type:varchar(255)" json:"name"`
}

// AncestorIDs разбирает Path в список id от корня к самому контексту (включительно)
func (c *Context) AncestorIDs() ([]uint, error) {
	parts := strings.Split(strings.Trim(c.Path, "/"), "/")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		id, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed context path %q: %w", c.Path, err)
		}
		ids = append(ids, uint(id))
	}
	if len(ids) == 0 {
		return []uint{c.ID}, nil
	}
	return ids, nil
}

// ChildPath строит путь для дочернего контекста
func (c *Context) ChildPath(childID uint) string {
	return fmt.Sprintf("%s/%d", c.Path, childID)
}
