package models

// Review is written once per case by the subscriber about the assigned
// investigator. The case unique index enforces the once-per-case rule.
type Review struct {
	BaseModel
	CaseID         string `gorm:"not null;uniqueIndex" json:"case_id"`
	ClientID       string `gorm:"not null;index" json:"client_id"`
	InvestigatorID string `gorm:"not null;index" json:"investigator_id"`
	Rating         int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment        string `json:"comment"`
}
