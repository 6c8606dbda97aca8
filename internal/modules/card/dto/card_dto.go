package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCardRequest struct {
	Title       string     `json:"title" binding:"required,notblank,max=200"`
	Description string     `json:"description" binding:"omitempty,max=20000"`
	Deadline    *time.Time `json:"deadline"`
	BoardID     uuid.UUID  `json:"board_id" binding:"required"`
	ListID      *uuid.UUID `json:"list_id"`
}

// UpdateCardRequest is a partial update; nil fields are left untouched.
// Moving a card between lists is an update of ListID. JSON null cannot be
// told apart from an absent field, so removing the deadline or taking the
// card off its list goes through the Clear flags.
type UpdateCardRequest struct {
	Title         *string    `json:"title" binding:"omitempty,notblank,max=200"`
	Description   *string    `json:"description" binding:"omitempty,max=20000"`
	Deadline      *time.Time `json:"deadline"`
	ListID        *uuid.UUID `json:"list_id"`
	ClearDeadline bool       `json:"clear_deadline"`
	ClearList     bool       `json:"clear_list"`
}

type SearchQuery struct {
	Q       string `form:"q" binding:"required,notblank,max=200"`
	BoardID string `form:"board_id" binding:"omitempty,uuid"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
