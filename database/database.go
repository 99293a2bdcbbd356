package database

import (
	"errors"
	"fmt"
	"time"

	"broadcast_backend/internal/auth"
	"broadcast_backend/internal/config"
	"broadcast_backend/internal/logger"
	"broadcast_backend/internal/models"
	"broadcast_backend/internal/repositories"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const systemContextName = "System"

// Open открывает соединение GORM для драйвера из конфига
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	gormCfg := &gorm.Config{}
	if cfg.Server.Env == "production" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}
	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Context{},
		&models.User{},
		&models.RoleAssignment{},
		&models.CourseCategory{},
		&models.Course{},
		&models.CourseModule{},
		&models.Broadcast{},
		&models.BroadcastAcknowledgement{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	logger.Info("AutoMigrate completed")
	return nil
}

// EnsureSystemContext создает корневой контекст сайта, если таблица пуста.
// Возвращает существующий или созданный контекст.
func EnsureSystemContext(db *gorm.DB) (*models.Context, error) {
	var root models.Context
	err := db.Where("context_level = ?", models.ContextLevelSystem).Order("id asc").First(&root).Error
	if err == nil {
		return &root, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up system context: %w", err)
	}

	ctx, err := repositories.NewContextRepository().CreateSystem(db, systemContextName)
	if err != nil {
		return nil, fmt.Errorf("failed to create system context: %w", err)
	}
	logger.Warn("System context created", "context_id", ctx.ID)
	return ctx, nil
}

// SeedFirstAdmin создает администратора сайта из конфига, если его еще нет
func SeedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		userRepo := repositories.NewUserRepository()

		_, err := userRepo.FindByEmail(tx, adminEmail)
		if err == nil {
			logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
			return nil
		}
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", err)
		}

		logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin := &models.User{
			Email:        adminEmail,
			FirstName:    "Site",
			LastName:     "Administrator",
			PasswordHash: hash,
			IsSiteAdmin:  true,
			TimeCreated:  time.Now().Unix(),
		}
		if err := userRepo.Create(tx, admin); err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		logger.Info("First admin user created", "email", adminEmail, "user_id", admin.ID)
		return nil
	})
}

// Prepare - миграция и начальные данные; возвращает id контекста сайта
func Prepare(db *gorm.DB, cfg *config.Config) (uint, error) {
	if err := AutoMigrate(db); err != nil {
		return 0, err
	}
	root, err := EnsureSystemContext(db)
	if err != nil {
		return 0, err
	}
	if err := SeedFirstAdmin(db, cfg); err != nil {
		return 0, err
	}
	return root.ID, nil
}
