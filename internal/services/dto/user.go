package dto

import "piwork_backend/internal/models"

// SwitchRoleRequest is the demo-only role flip. It is deliberately a separate
// request type from profile updates; role is otherwise immutable.
type SwitchRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=subscriber investigator"`
}

type MeResponse struct {
	User                *models.User                `json:"user"`
	SubscriberProfile   *models.SubscriberProfile   `json:"subscriber_profile,omitempty"`
	InvestigatorProfile *models.InvestigatorProfile `json:"investigator_profile,omitempty"`
}

type UserListResponse struct {
	Users      []models.User `json:"users"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}
