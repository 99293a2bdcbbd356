package services_test

import (
	"testing"
	"time"

	"broadcast_backend/internal/auth"
	"broadcast_backend/internal/models"
	"broadcast_backend/internal/repositories"
	"broadcast_backend/internal/services"
	"broadcast_backend/internal/services/dto"
	"broadcast_backend/internal/testutil"

	"github.com/stretchr/testify/require"
)

const (
	activeFrom  int64 = 1591842960
	activeUntil int64 = 1591846560
)

// fixture: сайт -> категория Science -> курс Physics; соседняя категория Arts -> курс Drawing
type fixture struct {
	*testutil.TestDB

	userRepo   repositories.UserRepository
	broadcasts services.BroadcastService
	catalog    services.CatalogService
	reports    services.ReportService
	privacy    services.PrivacyService
	users      services.UserService
	auth       services.AuthService

	category      *models.CourseCategory
	categoryCtx   *models.Context
	course        *models.Course
	courseCtx     *models.Context
	otherCourse   *models.Course
	otherCourseCt *models.Context

	admin   auth.Actor
	teacher auth.Actor
	student auth.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tdb := testutil.NewTestDB(t)
	contextRepo := repositories.NewContextRepository()
	userRepo := repositories.NewUserRepository()
	broadcastRepo := repositories.NewBroadcastRepository()
	catalogRepo := repositories.NewCatalogRepository()

	contextService := services.NewContextService(contextRepo, tdb.Site.ID, time.Minute)
	checker := auth.NewChecker(contextService, userRepo)

	f := &fixture{
		TestDB:   tdb,
		userRepo: userRepo,
		broadcasts: services.NewBroadcastService(broadcastRepo, userRepo, contextService, checker, services.BroadcastSettings{
			Location:       time.UTC,
			PollMinSeconds: 60,
			PollMaxSeconds: 120,
		}),
		catalog: services.NewCatalogService(catalogRepo, contextRepo, userRepo, contextService),
		reports: services.NewReportService(broadcastRepo, contextService, checker),
		privacy: services.NewPrivacyService(broadcastRepo, userRepo, contextService),
		users:   services.NewUserService(userRepo, contextService),
		auth:    services.NewAuthService(userRepo, testutil.TestJWTSecret, time.Hour),
	}

	f.category, f.categoryCtx = tdb.CreateCategory(t, "Science", tdb.Site)
	f.course, f.courseCtx = tdb.CreateCourse(t, "Physics", f.category.ID, f.categoryCtx)
	arts, artsCtx := tdb.CreateCategory(t, "Arts", tdb.Site)
	f.otherCourse, f.otherCourseCt = tdb.CreateCourse(t, "Drawing", arts.ID, artsCtx)

	admin := tdb.CreateUser(t, "admin@test.com", "password123", true)
	teacher := tdb.CreateUser(t, "teacher@test.com", "password123", false)
	student := tdb.CreateUser(t, "student@test.com", "password123", false)
	tdb.AssignRole(t, teacher.ID, f.categoryCtx.ID, models.RoleEditingTeacher)
	tdb.AssignRole(t, student.ID, f.courseCtx.ID, models.RoleStudent)

	f.admin = auth.Actor{UserID: admin.ID, SiteAdmin: true}
	f.teacher = auth.Actor{UserID: teacher.ID}
	f.student = auth.Actor{UserID: student.ID}
	return f
}

func (f *fixture) courseRequest(title string) *dto.BroadcastRequest {
	return &dto.BroadcastRequest{
		Title:      title,
		Message:    dto.BroadcastMessage{Text: "<p>" + title + "</p>", Format: models.FormatHTML},
		ScopeSite:  models.ScopeCourse,
		Courses:    f.course.ID,
		ActiveFrom: activeFrom,
		Expiry:     activeUntil,
		Mode:       models.BroadcastModeModal,
	}
}

func (f *fixture) siteRequest(title string) *dto.BroadcastRequest {
	req := f.courseRequest(title)
	req.ScopeSite = models.ScopeSite
	req.Courses = 0
	return req
}

func (f *fixture) createBroadcast(t *testing.T, req *dto.BroadcastRequest) uint {
	t.Helper()
	id, err := f.broadcasts.CreateBroadcast(f.DB, f.admin, req)
	require.NoError(t, err)
	return id
}
