package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	BroadcastHandler *BroadcastHandler
	ReportHandler    *ReportHandler
	CatalogHandler   *CatalogHandler
	PrivacyHandler   *PrivacyHandler
	HealthHandler    *HealthHandler
}
