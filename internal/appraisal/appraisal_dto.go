package appraisal

import "encoding/json"

type CreateTemplateRequest struct {
	Name        string          `json:"name" binding:"required,min=3,max=150"`
	Type        string          `json:"type" binding:"required,oneof=ANNUAL QUARTERLY PROBATION"`
	Description string          `json:"description" binding:"omitempty,max=2000"`
	Criteria    json.RawMessage `json:"criteria"`
}

type UpdateTemplateRequest struct {
	Name        *string         `json:"name" binding:"omitempty,min=3,max=150"`
	Type        *string         `json:"type" binding:"omitempty,oneof=ANNUAL QUARTERLY PROBATION"`
	Description *string         `json:"description" binding:"omitempty,max=2000"`
	Criteria    json.RawMessage `json:"criteria"`
}

type TemplateResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Criteria    json.RawMessage `json:"criteria,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

type DeleteTemplateResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type CreateCycleRequest struct {
	Name       string `json:"name" binding:"required,min=3,max=150"`
	TemplateID string `json:"template_id" binding:"required,uuid"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
}

type UpdateCycleRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=3,max=150"`
	StartDate *string `json:"start_date" binding:"omitempty"`
	EndDate   *string `json:"end_date" binding:"omitempty"`
}

type CycleResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	TemplateID  string  `json:"template_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Status      string  `json:"status"`
	PublishedAt *string `json:"published_at,omitempty"`
	ClosedAt    *string `json:"closed_at,omitempty"`
	ArchivedAt  *string `json:"archived_at,omitempty"`
}
