package dto

import "broadcast_backend/internal/models"

type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	ParentID uint   `json:"parent_id"`
}

type CreateCourseRequest struct {
	Fullname   string `json:"fullname" validate:"required,max=254"`
	Shortname  string `json:"shortname" validate:"max=255"`
	CategoryID uint   `json:"category_id" validate:"required,gt=0"`
}

type CreateModuleRequest struct {
	CourseID uint   `json:"course_id" validate:"required,gt=0"`
	Name     string `json:"name" validate:"required,max=255"`
	Kind     string `json:"kind" validate:"required,max=40"`
}

type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	FirstName   string `json:"first_name" validate:"max=100"`
	LastName    string `json:"last_name" validate:"max=100"`
	IsSiteAdmin bool   `json:"is_site_admin"`
}

type AssignRoleRequest struct {
	UserID    uint            `json:"user_id" validate:"required,gt=0"`
	ContextID uint            `json:"context_id" validate:"required,gt=0"`
	Role      models.RoleName `json:"role" validate:"required,is-role"`
}

// CatalogItemResponse - созданный узел каталога вместе с его контекстом
type CatalogItemResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ContextID uint   `json:"contextid"`
	Path      string `json:"path"`
}

type EligibleCoursesResponse struct {
	Courses map[uint]string `json:"courses"`
}
