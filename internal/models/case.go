package models

import "time"

// Case is the unit of work between a subscriber (ClientID) and an optionally
// assigned investigator. It is the aggregate root for Messages.
type Case struct {
	BaseModel
	ClientID       string     `gorm:"not null;index" json:"client_id"`
	InvestigatorID *string    `gorm:"index" json:"investigator_id"`
	Title          string     `gorm:"not null" json:"title"`
	Description    string     `json:"description"`
	Type           string     `json:"type"` // "background_check", "surveillance", "fraud", ...
	Priority       string     `gorm:"default:'normal'" json:"priority"`
	Status         CaseStatus `gorm:"type:varchar(20);default:'new'" json:"status"`
	Location       string     `json:"location"`
	Budget         *float64   `json:"budget"`
	Timeframe      string     `json:"timeframe"`
	LastActivity   time.Time  `json:"last_activity"`

	// Relations
	Messages []Message `gorm:"foreignKey:CaseID" json:"messages,omitempty"`
}

// Assigned reports whether an investigator is attached to the case.
func (c *Case) Assigned() bool {
	return c.InvestigatorID != nil && *c.InvestigatorID != ""
}

// IsParty reports whether userID is the case owner or the assigned investigator.
func (c *Case) IsParty(userID string) bool {
	if userID == c.ClientID {
		return true
	}
	return c.Assigned() && *c.InvestigatorID == userID
}

// Counterparty returns the user that should be informed about an action taken
// by actorID: the other party of the case. ok is false when there is nobody to
// inform (unassigned case acted on by its owner). Callers decide explicitly
// whether a missing counterparty is a skip or a failure.
func (c *Case) Counterparty(actorID string) (string, bool) {
	switch {
	case actorID == c.ClientID:
		if c.Assigned() {
			return *c.InvestigatorID, true
		}
		return "", false
	case c.Assigned() && *c.InvestigatorID == actorID:
		return c.ClientID, true
	default:
		// Admin or other non-party actor: the owner is always informed.
		return c.ClientID, true
	}
}
