package repository

import (
	"context"
	"time"

	"anoa.com/kolabboard/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Query is the resolved form of an audit log filter. Viewer limits results
// to logs the viewer wrote or that belong to boards in the viewer's
// organizations.
type Query struct {
	Viewer  uuid.UUID
	UserID  *uuid.UUID
	BoardID *uuid.UUID
	Action  string
	From    *time.Time
	To      *time.Time
}

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	Find(ctx context.Context, q Query) ([]entity.AuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return r.db.WithContext(ctx).Omit("Board", "User").Create(log).Error
}

func (r *auditLogRepository) Find(ctx context.Context, q Query) ([]entity.AuditLog, error) {
	visibleBoards := r.db.Model(&entity.Board{}).
		Select("boards.id").
		Joins("JOIN organization_members ON organization_members.organization_id = boards.organization_id").
		Where("organization_members.user_id = ?", q.Viewer)

	query := r.db.WithContext(ctx).
		Preload("Board", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title")
		}).
		Where("(user_id = ? OR board_id IN (?))", q.Viewer, visibleBoards)

	if q.UserID != nil {
		query = query.Where("user_id = ?", *q.UserID)
	}
	if q.BoardID != nil {
		query = query.Where("board_id = ?", *q.BoardID)
	}
	if q.Action != "" {
		query = query.Where("action = ?", q.Action)
	}
	if q.From != nil {
		query = query.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("created_at <= ?", *q.To)
	}

	var logs []entity.AuditLog
	err := query.Order("created_at DESC").Find(&logs).Error
	return logs, err
}
