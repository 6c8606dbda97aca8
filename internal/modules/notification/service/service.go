package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"anoa.com/kolabboard/internal/entity"
	access "anoa.com/kolabboard/internal/modules/access/service"
	"anoa.com/kolabboard/internal/modules/notification/dto"
	notifRepo "anoa.com/kolabboard/internal/modules/notification/repository"
	"anoa.com/kolabboard/pkg/apperror"
	commonDto "anoa.com/kolabboard/pkg/dto"
	"anoa.com/kolabboard/pkg/sanitize"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultPageSize = 20

// Channel is the pub/sub channel carrying a user's live notifications.
func Channel(userID uuid.UUID) string {
	return fmt.Sprintf("user_notifications:%s", userID.String())
}

// Publisher fans a stored notification out to live subscribers.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type redisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher returns nil for a nil client so the service skips
// publishing entirely.
func NewRedisPublisher(client *redis.Client) Publisher {
	if client == nil {
		return nil
	}
	return &redisPublisher{client: client}
}

func (p *redisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}

type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type NotificationService interface {
	// Notify stores a system notification for userID and publishes it.
	Notify(ctx context.Context, userID uuid.UUID, content string) error
	Create(ctx context.Context, senderID uuid.UUID, req dto.CreateNotificationRequest) (*entity.Notification, error)
	GetNotifications(ctx context.Context, userID uuid.UUID, page commonDto.PageQuery) (*dto.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo      notifRepo.NotificationRepository
	users     UserFinder
	access    access.Service
	publisher Publisher
	log       *zap.Logger
}

func NewNotificationService(repo notifRepo.NotificationRepository, users UserFinder, access access.Service, publisher Publisher, log *zap.Logger) NotificationService {
	return &notificationService{
		repo:      repo,
		users:     users,
		access:    access,
		publisher: publisher,
		log:       log,
	}
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, content string) error {
	_, err := s.store(ctx, userID, content)
	return err
}

// Create lets a user notify someone they share an organization with.
func (s *notificationService) Create(ctx context.Context, senderID uuid.UUID, req dto.CreateNotificationRequest) (*entity.Notification, error) {
	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	shares, err := s.access.SharesOrganization(ctx, senderID, req.UserID)
	if err != nil {
		return nil, err
	}
	if !shares {
		return nil, fmt.Errorf("recipient is not in any of your organizations: %w", apperror.ErrForbidden)
	}

	return s.store(ctx, req.UserID, req.Content)
}

func (s *notificationService) store(ctx context.Context, userID uuid.UUID, content string) (*entity.Notification, error) {
	n := &entity.Notification{UserID: userID, Content: sanitize.Plain(content)}
	if n.Content == "" {
		return nil, fmt.Errorf("notification content is empty: %w", apperror.ErrInvalidInput)
	}

	// 1. Save to DB
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, apperror.FromDB(err)
	}

	// 2. Publish to live subscribers
	if s.publisher != nil {
		payload, err := json.Marshal(n)
		if err == nil {
			err = s.publisher.Publish(ctx, Channel(userID), payload)
		}
		if err != nil {
			s.log.Warn("failed to publish notification", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	return n, nil
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID, page commonDto.PageQuery) (*dto.NotificationListResponse, error) {
	offset := page.Normalize(defaultPageSize)

	notifications, total, err := s.repo.GetByUserID(ctx, userID, page.Limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationListResponse{
		Notifications: notifications,
		Meta:          commonDto.NewPaginationMeta(page, total),
	}, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apperror.FromDB(err)
	}
	if n.UserID != userID {
		return fmt.Errorf("notification belongs to another user: %w", apperror.ErrForbidden)
	}
	if n.Read {
		return nil
	}
	return s.repo.MarkAsRead(ctx, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
