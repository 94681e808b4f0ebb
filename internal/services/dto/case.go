package dto

import "piwork_backend/internal/models"

type CreateCaseRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Type        string   `json:"type" validate:"required,oneof=background_check surveillance fraud missing_person due_diligence other"`
	Priority    string   `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	Location    string   `json:"location" validate:"max=200"`
	Budget      *float64 `json:"budget" validate:"omitempty,gte=0"`
	Timeframe   string   `json:"timeframe" validate:"max=100"`
}

// UpdateCaseRequest is a patch; nil fields are left untouched.
type UpdateCaseRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Status      *string  `json:"status" validate:"omitempty,case_status"`
	Priority    *string  `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	Location    *string  `json:"location" validate:"omitempty,max=200"`
	Budget      *float64 `json:"budget" validate:"omitempty,gte=0"`
	Timeframe   *string  `json:"timeframe" validate:"omitempty,max=100"`
}

type AssignInvestigatorRequest struct {
	InvestigatorID string `json:"investigator_id" validate:"required,uuid4"`
}

type CaseListResponse struct {
	Cases      []models.Case `json:"cases"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

type CaseDetailResponse struct {
	Case     *models.Case     `json:"case"`
	Messages []models.Message `json:"messages"`
}
