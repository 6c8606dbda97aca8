package dto

import "github.com/google/uuid"

type CreateRevisionRequest struct {
	Message string    `json:"message" binding:"required,notblank,max=5000"`
	CardID  uuid.UUID `json:"card_id" binding:"required"`
}
