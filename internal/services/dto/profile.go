package dto

import "piwork_backend/internal/models"

type UpdateInvestigatorProfileRequest struct {
	Specializations []string `json:"specializations" validate:"omitempty,max=20,dive,min=2,max=100"`
	Skills          []string `json:"skills" validate:"omitempty,max=30,dive,min=2,max=100"`
	Bio             *string  `json:"bio" validate:"omitempty,max=2000"`
	Location        *string  `json:"location" validate:"omitempty,max=200"`
	IsAvailable     *bool    `json:"is_available"`
}

type InvestigatorListResponse struct {
	Investigators []models.InvestigatorProfile `json:"investigators"`
	Total         int64                        `json:"total"`
	Page          int                          `json:"page"`
	PageSize      int                          `json:"page_size"`
	TotalPages    int                          `json:"total_pages"`
}
