package models

// Broadcast - сообщение рассылки, привязанное к контексту (области).
// Временное окно строгое: TimeStart < now < TimeEnd.
type Broadcast struct {
	BaseModel
	ContextID   uint          `gorm:"not null;index" json:"contextid"`
	Title       string        `gorm:"type:varchar(254);not null" json:"title"`
	Body        string        `gorm:"type:text" json:"body"`
	BodyFormat  int           `gorm:"not null" json:"bodyformat"`
	LoggedIn    bool          `gorm:"not null;default:false" json:"loggedin"`
	Mode        BroadcastMode `gorm:"not null;default:1" json:"mode"`
	TimeCreated int64         `gorm:"not null" json:"timecreated"`
	TimeStart   int64         `gorm:"not null;index" json:"timestart"`
	TimeEnd     int64         `gorm:"not null;index" json:"timeend"`
}

// BroadcastAcknowledgement - пользователь закрыл рассылку
type BroadcastAcknowledgement struct {
	BaseModel
	BroadcastID uint  `gorm:"not null;uniqueIndex:idx_broadcast_ack_user" json:"broadcastid"`
	UserID      uint  `gorm:"not null;uniqueIndex:idx_broadcast_ack_user;index" json:"userid"`
	ContextID   uint  `gorm:"not null;index" json:"contextid"`
	AckTime     int64 `gorm:"not null" json:"acktime"`
}

func (BroadcastAcknowledgement) TableName() string {
	return "broadcast_acknowledgements"
}
