package repository

import (
	"context"

	"anoa.com/kolabboard/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RevisionRepository interface {
	Create(ctx context.Context, revision *entity.Revision) error
	FindByCard(ctx context.Context, cardID uuid.UUID) ([]entity.Revision, error)
}

type revisionRepository struct {
	db *gorm.DB
}

func NewRevisionRepository(db *gorm.DB) RevisionRepository {
	return &revisionRepository{db: db}
}

func (r *revisionRepository) Create(ctx context.Context, revision *entity.Revision) error {
	return r.db.WithContext(ctx).Omit("User").Create(revision).Error
}

// FindByCard returns the card history oldest first with authors loaded.
func (r *revisionRepository) FindByCard(ctx context.Context, cardID uuid.UUID) ([]entity.Revision, error) {
	var revisions []entity.Revision
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("card_id = ?", cardID).
		Order("created_at ASC").
		Find(&revisions).Error
	return revisions, err
}
