package dto

import "github.com/google/uuid"

// CreateFileRequest registers a file hosted elsewhere.
type CreateFileRequest struct {
	URL    string    `json:"url" binding:"required,url,max=2048"`
	Name   string    `json:"name" binding:"required,notblank,max=255"`
	Type   string    `json:"type" binding:"omitempty,max=100"`
	CardID uuid.UUID `json:"card_id" binding:"required"`
}

// UploadFileForm is the non-file part of a multipart upload.
type UploadFileForm struct {
	CardID string `form:"card_id" binding:"required,uuid"`
}
