package services

import "broadcast_backend/internal/auth"

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	ContextService   ContextService
	BroadcastService BroadcastService
	CatalogService   CatalogService
	ReportService    ReportService
	PrivacyService   PrivacyService
	UserService      UserService
	AuthService      AuthService
	Checker          *auth.Checker
}
