package dto

import (
	"anoa.com/kolabboard/internal/entity"
	commonDto "anoa.com/kolabboard/pkg/dto"
	"github.com/google/uuid"
)

type CreateNotificationRequest struct {
	UserID  uuid.UUID `json:"user_id" binding:"required"`
	Content string    `json:"content" binding:"required,notblank,max=1000"`
}

type NotificationListResponse struct {
	Notifications []entity.Notification    `json:"notifications"`
	Meta          commonDto.PaginationMeta `json:"meta"`
}
