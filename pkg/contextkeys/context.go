package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// DBContextKey - ключ, по которому хранится *gorm.DB (пул или транзакция)
	DBContextKey = contextKey("db")

	// UserIDKey - id пользователя из JWT (uint)
	UserIDKey = contextKey("userID")

	// SiteAdminKey - флаг администратора сайта из JWT
	SiteAdminKey = contextKey("siteAdmin")
)
