package dto

type BroadcastTableQuery struct {
	Sort  string `form:"sort" validate:"omitempty,oneof=id title time_created time_start time_end"`
	Order string `form:"order" validate:"omitempty,oneof=asc desc"`
}

type AckReportQuery struct {
	BroadcastID uint `form:"broadcastid"`
}

type BroadcastTableRow struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	ContextID   uint   `json:"contextid"`
	ContextName string `json:"context_name"`
	ScopeLevel  string `json:"scope_level"`
	LoggedIn    bool   `json:"loggedin"`
	Mode        int    `json:"mode"`
	TimeCreated int64  `json:"timecreated"`
	TimeStart   int64  `json:"timestart"`
	TimeEnd     int64  `json:"timeend"`
	Expired     bool   `json:"expired"`
}

type BroadcastTableResponse struct {
	Broadcasts []BroadcastTableRow `json:"broadcasts"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

type AckReportEntry struct {
	ID             uint   `json:"id"`
	BroadcastID    uint   `json:"broadcastid"`
	BroadcastTitle string `json:"broadcast_title"`
	UserID         uint   `json:"userid"`
	FullName       string `json:"fullname"`
	Email          string `json:"email"`
	ContextID      uint   `json:"contextid"`
	Location       string `json:"location"`
	AckTime        int64  `json:"acktime"`
}

type AckReportResponse struct {
	Entries    []AckReportEntry `json:"entries"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// ============================================================================
// Privacy
// ============================================================================

type AckExportEntry struct {
	BroadcastID uint  `json:"broadcastid"`
	UserID      uint  `json:"userid"`
	ContextID   uint  `json:"contextid"`
	AckTime     int64 `json:"acktime"`
}

type UserDataExport struct {
	UserID           uint             `json:"userid"`
	Acknowledgements []AckExportEntry `json:"acknowledgements"`
}

type DeleteDataResponse struct {
	Deleted int64 `json:"deleted"`
}
