package dto

import "github.com/google/uuid"

type CreateBoardRequest struct {
	Title          string    `json:"title" binding:"required,notblank,max=150"`
	Background     string    `json:"background" binding:"omitempty,max=255"`
	OrganizationID uuid.UUID `json:"organization_id" binding:"required"`
}

// UpdateBoardRequest is a partial update; nil fields are left untouched.
type UpdateBoardRequest struct {
	Title      *string `json:"title" binding:"omitempty,notblank,max=150"`
	Background *string `json:"background" binding:"omitempty,max=255"`
}
