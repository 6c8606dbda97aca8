package repository

import (
	"context"

	"anoa.com/kolabboard/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository interface {
	Create(ctx context.Context, board *entity.Board) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Board, error)
	FindByOrganization(ctx context.Context, organizationID uuid.UUID) ([]entity.Board, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type boardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) Create(ctx context.Context, board *entity.Board) error {
	return r.db.WithContext(ctx).Omit("Creator", "Lists", "Cards", "AuditLogs").Create(board).Error
}

// FindByID loads the board with its lists in position order.
func (r *boardRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Board, error) {
	var board entity.Board
	err := r.db.WithContext(ctx).
		Preload("Lists", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC").Order("created_at ASC")
		}).
		First(&board, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) FindByOrganization(ctx context.Context, organizationID uuid.UUID) ([]entity.Board, error) {
	var boards []entity.Board
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&boards).Error
	return boards, err
}

func (r *boardRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&entity.Board{}).Where("id = ?", id).Updates(updates).Error
}

func (r *boardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Board{}, "id = ?", id).Error
}
