package models

// BaseModel - автоинкрементный id; время хранится в unix-секундах в самих моделях
type BaseModel struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
}
