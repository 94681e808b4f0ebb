package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string         `gorm:"not null;index" json:"user_id"`
	Type    string         `gorm:"not null" json:"type"` // "case_created", "case_assignment", "new_message", ...
	Title   string         `gorm:"not null" json:"title"`
	Message string         `json:"message"`
	Link    string         `json:"link"`
	Data    datatypes.JSON `gorm:"type:jsonb" json:"data"` // {"case_id": "...", "sender_id": "..."}
	IsRead  bool           `gorm:"default:false" json:"is_read"`
	ReadAt  *time.Time     `json:"read_at"`
}
