package dto

import "broadcast_backend/internal/models"

// ============================================================================
// Запросы администратора
// ============================================================================

// BroadcastMessage - тело сообщения с форматом разметки
type BroadcastMessage struct {
	Text   string `json:"text"`
	Format int    `json:"format" validate:"oneof=0 1 2 4"`
}

// BroadcastRequest - поля формы создания/редактирования рассылки.
// Update заменяет все изменяемые поля целиком.
type BroadcastRequest struct {
	Title      string               `json:"title" validate:"required,notblank,max=254"`
	Message    BroadcastMessage     `json:"message"`
	ScopeSite  models.ScopeSelector `json:"scopesite" validate:"is-scope"`
	Categories uint                 `json:"categories"`
	Courses    uint                 `json:"courses"`
	ActiveFrom int64                `json:"activefrom" validate:"required,gt=0"`
	Expiry     int64                `json:"expiry" validate:"required,gtfield=ActiveFrom"`
	LoggedIn   bool                 `json:"loggedin"`
	Mode       models.BroadcastMode `json:"mode" validate:"omitempty,is-broadcast-mode"`
}

type CreateBroadcastResponse struct {
	ID uint `json:"id"`
}

// ============================================================================
// Запросы пользователя
// ============================================================================

type BroadcastQuery struct {
	ContextID uint  `form:"contextid" validate:"required,gt=0"`
	Now       int64 `form:"now" validate:"gte=0"`
}

type AcknowledgeRequest struct {
	ContextID uint `json:"contextid" validate:"required,gt=0"`
}

// ============================================================================
// Ответы
// ============================================================================

type BroadcastResponse struct {
	ID          uint                 `json:"id"`
	ContextID   uint                 `json:"contextid"`
	Title       string               `json:"title"`
	Body        string               `json:"body"`
	BodyFormat  int                  `json:"bodyformat"`
	LoggedIn    bool                 `json:"loggedin"`
	Mode        models.BroadcastMode `json:"mode"`
	ShowModal   bool                 `json:"showmodal"`
	ShowNotice  bool                 `json:"shownotification"`
	TimeCreated int64                `json:"timecreated"`
	TimeStart   int64                `json:"timestart"`
	TimeEnd     int64                `json:"timeend"`
}

// CheckResponse - ответ легкого опроса; NextPollSeconds случаен, чтобы клиенты не били сервер одновременно
type CheckResponse struct {
	HasBroadcasts   bool `json:"hasbroadcasts"`
	NextPollSeconds int  `json:"next_poll_seconds"`
}

type BroadcastNameResponse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// DateParts - дата, разложенная по полям формы в часовом поясе сервера
type DateParts struct {
	Day       int   `json:"day"`
	Month     int   `json:"month"`
	Year      int   `json:"year"`
	Hour      int   `json:"hour"`
	Minute    int   `json:"minute"`
	Timestamp int64 `json:"timestamp"`
}

// BroadcastFormData - запись, переложенная в раскладку формы редактирования
type BroadcastFormData struct {
	ID         uint                 `json:"id"`
	ContextID  uint                 `json:"contextid"`
	Title      string               `json:"title"`
	Message    BroadcastMessage     `json:"message"`
	ScopeSite  models.ScopeSelector `json:"scopesite"`
	Categories uint                 `json:"categories"`
	Courses    uint                 `json:"courses"`
	ActiveFrom DateParts            `json:"activefrom"`
	Expiry     DateParts            `json:"expiry"`
	LoggedIn   bool                 `json:"loggedin"`
	Mode       models.BroadcastMode `json:"mode"`
}
