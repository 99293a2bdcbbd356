package services_test

import (
	"fmt"
	"testing"

	"broadcast_backend/internal/auth"
	"broadcast_backend/internal/models"
	"broadcast_backend/internal/services/dto"
	"broadcast_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CreateTree(t *testing.T) {
	f := newFixture(t)

	cat, err := f.catalog.CreateCategory(f.DB, &dto.CreateCategoryRequest{Name: "History"})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("/%d/%d", f.Site.ID, cat.ContextID), cat.Path)

	sub, err := f.catalog.CreateCategory(f.DB, &dto.CreateCategoryRequest{Name: "Ancient", ParentID: cat.ID})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s/%d", cat.Path, sub.ContextID), sub.Path)

	course, err := f.catalog.CreateCourse(f.DB, &dto.CreateCourseRequest{Fullname: "Rome", CategoryID: sub.ID})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s/%d", sub.Path, course.ContextID), course.Path)

	module, err := f.catalog.CreateModule(f.DB, &dto.CreateModuleRequest{CourseID: course.ID, Name: "Quiz 1", Kind: "quiz"})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s/%d", course.Path, module.ContextID), module.Path)

	// рассылка уровня категории видна из модуля курса
	req := f.siteRequest("History week")
	req.ScopeSite = models.ScopeCategory
	req.Categories = cat.ID
	id := f.createBroadcast(t, req)
	assert.Equal(t, []uint{id}, visibleIDs(t, f, f.student, module.ContextID, activeFrom+1))
}

func TestCatalogService_MissingParents(t *testing.T) {
	f := newFixture(t)

	_, err := f.catalog.CreateCategory(f.DB, &dto.CreateCategoryRequest{Name: "Orphan", ParentID: 9999})
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)

	_, err = f.catalog.CreateCourse(f.DB, &dto.CreateCourseRequest{Fullname: "Orphan", CategoryID: 9999})
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)

	_, err = f.catalog.CreateModule(f.DB, &dto.CreateModuleRequest{CourseID: 9999, Name: "Orphan", Kind: "forum"})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	var count int64
	require.NoError(t, f.DB.Model(&models.CourseCategory{}).Where("name = ?", "Orphan").Count(&count).Error)
	assert.Zero(t, count, "транзакция откатывается целиком")
}

func TestCatalogService_EligibleCourses(t *testing.T) {
	f := newFixture(t)

	courses, err := f.catalog.GetEligibleCourses(f.DB, f.admin)
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{f.course.ID: "Physics", f.otherCourse.ID: "Drawing"}, courses)

	courses, err = f.catalog.GetEligibleCourses(f.DB, f.teacher)
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{f.course.ID: "Physics"}, courses, "роль в категории дает только ее курсы")

	courses, err = f.catalog.GetEligibleCourses(f.DB, f.student)
	require.NoError(t, err)
	assert.Empty(t, courses)

	courses, err = f.catalog.GetEligibleCourses(f.DB, auth.Actor{})
	require.NoError(t, err)
	assert.Empty(t, courses)
}
