package models

// Message belongs to exactly one Case. SenderID must be one of the case
// parties; the message service enforces that before persisting.
type Message struct {
	BaseModel
	CaseID   string `gorm:"not null;index" json:"case_id"`
	SenderID string `gorm:"not null;index" json:"sender_id"`
	Content  string `gorm:"not null" json:"content"`
}
