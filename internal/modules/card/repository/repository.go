package repository

import (
	"context"
	"strings"

	"anoa.com/kolabboard/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository interface {
	Create(ctx context.Context, card *entity.Card) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Card, error)
	FindByBoard(ctx context.Context, boardID uuid.UUID) ([]entity.Card, error)
	FindByIDs(ctx context.Context, ids, boardIDs []uuid.UUID) ([]entity.Card, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AccessibleBoardIDs returns the boards of every organization the user
	// belongs to.
	AccessibleBoardIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// SearchText matches title or description case-insensitively.
	SearchText(ctx context.Context, query string, boardIDs []uuid.UUID, limit int) ([]entity.Card, error)
}

type cardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(ctx context.Context, card *entity.Card) error {
	return r.db.WithContext(ctx).Omit("Files", "Revisions").Create(card).Error
}

func (r *cardRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Card, error) {
	var card entity.Card
	err := r.db.WithContext(ctx).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&card, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) FindByBoard(ctx context.Context, boardID uuid.UUID) ([]entity.Card, error) {
	var cards []entity.Card
	err := r.db.WithContext(ctx).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("board_id = ?", boardID).
		Order("created_at ASC").
		Find(&cards).Error
	return cards, err
}

func (r *cardRepository) FindByIDs(ctx context.Context, ids, boardIDs []uuid.UUID) ([]entity.Card, error) {
	var cards []entity.Card
	if len(ids) == 0 || len(boardIDs) == 0 {
		return cards, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ? AND board_id IN ?", ids, boardIDs).
		Find(&cards).Error
	return cards, err
}

func (r *cardRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&entity.Card{}).Where("id = ?", id).Updates(updates).Error
}

func (r *cardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Card{}, "id = ?", id).Error
}

func (r *cardRepository) AccessibleBoardIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&entity.Board{}).
		Joins("JOIN organization_members om ON om.organization_id = boards.organization_id").
		Where("om.user_id = ?", userID).
		Pluck("boards.id", &ids).Error
	return ids, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *cardRepository) SearchText(ctx context.Context, query string, boardIDs []uuid.UUID, limit int) ([]entity.Card, error) {
	var cards []entity.Card
	if len(boardIDs) == 0 {
		return cards, nil
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(query))) + "%"
	err := r.db.WithContext(ctx).
		Where("board_id IN ?", boardIDs).
		Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&cards).Error
	return cards, err
}
