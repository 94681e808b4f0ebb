package models

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FullName     string     `json:"full_name"`
	Role         UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`

	// Relations
	SubscriberProfile   *SubscriberProfile   `gorm:"foreignKey:UserID" json:"subscriber_profile,omitempty"`
	InvestigatorProfile *InvestigatorProfile `gorm:"foreignKey:UserID" json:"investigator_profile,omitempty"`
}
