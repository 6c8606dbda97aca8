package repository

import (
	"context"

	"anoa.com/kolabboard/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessRepository holds the lookups behind every authorization decision.
// Find* methods return gorm.ErrRecordNotFound for missing rows.
type AccessRepository interface {
	FindOrganization(ctx context.Context, id uuid.UUID) (*entity.Organization, error)
	FindBoard(ctx context.Context, id uuid.UUID) (*entity.Board, error)
	FindList(ctx context.Context, id uuid.UUID) (*entity.List, error)
	FindCard(ctx context.Context, id uuid.UUID) (*entity.Card, error)
	FindFile(ctx context.Context, id uuid.UUID) (*entity.File, error)
	MemberExists(ctx context.Context, userID, organizationID uuid.UUID) (bool, error)
	SharesOrganization(ctx context.Context, userID, otherID uuid.UUID) (bool, error)
}

type accessRepository struct {
	db *gorm.DB
}

func NewAccessRepository(db *gorm.DB) AccessRepository {
	return &accessRepository{db: db}
}

func (r *accessRepository) FindOrganization(ctx context.Context, id uuid.UUID) (*entity.Organization, error) {
	var org entity.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *accessRepository) FindBoard(ctx context.Context, id uuid.UUID) (*entity.Board, error) {
	var board entity.Board
	if err := r.db.WithContext(ctx).First(&board, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *accessRepository) FindList(ctx context.Context, id uuid.UUID) (*entity.List, error) {
	var list entity.List
	if err := r.db.WithContext(ctx).First(&list, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *accessRepository) FindCard(ctx context.Context, id uuid.UUID) (*entity.Card, error) {
	var card entity.Card
	if err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *accessRepository) FindFile(ctx context.Context, id uuid.UUID) (*entity.File, error) {
	var file entity.File
	if err := r.db.WithContext(ctx).First(&file, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *accessRepository) MemberExists(ctx context.Context, userID, organizationID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.OrganizationMember{}).
		Where("user_id = ? AND organization_id = ?", userID, organizationID).
		Count(&count).Error
	return count > 0, err
}

func (r *accessRepository) SharesOrganization(ctx context.Context, userID, otherID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("organization_members AS a").
		Joins("JOIN organization_members AS b ON a.organization_id = b.organization_id").
		Where("a.user_id = ? AND b.user_id = ?", userID, otherID).
		Count(&count).Error
	return count > 0, err
}
