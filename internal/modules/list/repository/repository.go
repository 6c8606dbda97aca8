package repository

import (
	"context"

	"anoa.com/kolabboard/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListRepository interface {
	// CreateAtEnd assigns the next position on the board and inserts the list.
	CreateAtEnd(ctx context.Context, list *entity.List) error
	FindByBoard(ctx context.Context, boardID uuid.UUID) ([]entity.List, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type listRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) CreateAtEnd(ctx context.Context, list *entity.List) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.List{}).Where("board_id = ?", list.BoardID).Count(&count).Error; err != nil {
			return err
		}
		list.Position = int(count)
		return tx.Omit("Cards").Create(list).Error
	})
}

func (r *listRepository) FindByBoard(ctx context.Context, boardID uuid.UUID) ([]entity.List, error) {
	var lists []entity.List
	err := r.db.WithContext(ctx).
		Preload("Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("board_id = ?", boardID).
		Order("position ASC").Order("created_at ASC").
		Find(&lists).Error
	return lists, err
}

func (r *listRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&entity.List{}).Where("id = ?", id).Updates(updates).Error
}

func (r *listRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.List{}, "id = ?", id).Error
}
