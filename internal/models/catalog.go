package models

type CourseCategory struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	ParentID uint   `gorm:"not null;default:0;index" json:"parent_id"` // 0 - верхний уровень
}

type Course struct {
	BaseModel
	Fullname   string `gorm:"type:varchar(254);not null" json:"fullname"`
	Shortname  string `gorm:"type:varchar(255)" json:"shortname"`
	CategoryID uint   `gorm:"not null;index" json:"category_id"`
}

// CourseModule - активность внутри курса (задание, форум и т.д.)
type CourseModule struct {
	BaseModel
	CourseID uint   `gorm:"not null;index" json:"course_id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Kind     string `gorm:"type:varchar(40);not null" json:"kind"` // assign, forum, quiz ...
}
