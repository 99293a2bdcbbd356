package testutil

import (
	"fmt"
	"testing"
	"time"

	"broadcast_backend/database"
	"broadcast_backend/internal/auth"
	"broadcast_backend/internal/models"
	"broadcast_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TestDB - отдельная in-memory БД на каждый тест
type TestDB struct {
	DB   *gorm.DB
	Site *models.Context
}

func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Не удалось открыть тестовую БД")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// одно соединение: in-memory БД живет, пока оно открыто
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	site, err := database.EnsureSystemContext(db)
	require.NoError(t, err)

	return &TestDB{DB: db, Site: site}
}

// CreateUser создает пользователя с захешированным паролем
func (tdb *TestDB) CreateUser(t *testing.T, email, password string, siteAdmin bool) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{
		Email:        email,
		FirstName:    "Test",
		LastName:     email,
		PasswordHash: hash,
		IsSiteAdmin:  siteAdmin,
		TimeCreated:  time.Now().Unix(),
	}
	require.NoError(t, repositories.NewUserRepository().Create(tdb.DB, user), "Не удалось создать пользователя %s", email)
	return user
}

// AssignRole назначает роль в контексте
func (tdb *TestDB) AssignRole(t *testing.T, userID, contextID uint, role models.RoleName) {
	t.Helper()
	err := repositories.NewUserRepository().AssignRole(tdb.DB, &models.RoleAssignment{
		UserID:    userID,
		ContextID: contextID,
		Role:      role,
	})
	require.NoError(t, err)
}

// CreateCategory создает категорию и ее контекст под parent
func (tdb *TestDB) CreateCategory(t *testing.T, name string, parent *models.Context) (*models.CourseCategory, *models.Context) {
	t.Helper()
	category := &models.CourseCategory{Name: name}
	require.NoError(t, repositories.NewCatalogRepository().CreateCategory(tdb.DB, category))
	ctx, err := repositories.NewContextRepository().CreateChild(tdb.DB, parent, models.ContextLevelCategory, category.ID, name)
	require.NoError(t, err)
	return category, ctx
}

// CreateCourse создает курс в категории вместе с контекстом
func (tdb *TestDB) CreateCourse(t *testing.T, fullname string, categoryID uint, parent *models.Context) (*models.Course, *models.Context) {
	t.Helper()
	course := &models.Course{Fullname: fullname, Shortname: fullname, CategoryID: categoryID}
	require.NoError(t, repositories.NewCatalogRepository().CreateCourse(tdb.DB, course))
	ctx, err := repositories.NewContextRepository().CreateChild(tdb.DB, parent, models.ContextLevelCourse, course.ID, fullname)
	require.NoError(t, err)
	return course, ctx
}

// CreateBroadcast вставляет рассылку напрямую, в обход сервиса
func (tdb *TestDB) CreateBroadcast(t *testing.T, b *models.Broadcast) *models.Broadcast {
	t.Helper()
	if b.Mode == 0 {
		b.Mode = models.BroadcastModeModal
	}
	require.NoError(t, repositories.NewBroadcastRepository().Create(tdb.DB, b))
	return b
}
