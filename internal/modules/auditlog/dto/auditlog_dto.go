package dto

import "github.com/google/uuid"

// AuditLogFilter is bound from the query string. Dates accept RFC3339 or
// YYYY-MM-DD; a date-only end_date covers that whole day.
type AuditLogFilter struct {
	UserID    string `form:"user_id" binding:"omitempty,uuid"`
	BoardID   string `form:"board_id" binding:"omitempty,uuid"`
	Action    string `form:"action" binding:"omitempty,max=100"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type CreateAuditLogRequest struct {
	Action  string     `json:"action" binding:"required,notblank,max=100"`
	BoardID *uuid.UUID `json:"board_id"`
	Details string     `json:"details" binding:"max=2000"`
}
