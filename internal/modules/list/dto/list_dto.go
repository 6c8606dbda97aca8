package dto

import "github.com/google/uuid"

type CreateListRequest struct {
	Title   string    `json:"title" binding:"required,notblank,max=150"`
	BoardID uuid.UUID `json:"board_id" binding:"required"`
}

type UpdateListRequest struct {
	Title    *string `json:"title" binding:"omitempty,notblank,max=150"`
	Position *int    `json:"position" binding:"omitempty,min=0"`
}
