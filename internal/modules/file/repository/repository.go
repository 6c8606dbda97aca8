package repository

import (
	"context"

	"anoa.com/kolabboard/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileRepository interface {
	Create(ctx context.Context, file *entity.File) error
	FindByCard(ctx context.Context, cardID uuid.UUID) ([]entity.File, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, file *entity.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *fileRepository) FindByCard(ctx context.Context, cardID uuid.UUID) ([]entity.File, error) {
	var files []entity.File
	err := r.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("created_at ASC").
		Find(&files).Error
	return files, err
}

func (r *fileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.File{}, "id = ?", id).Error
}
