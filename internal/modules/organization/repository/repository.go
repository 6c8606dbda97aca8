package repository

import (
	"context"
	"errors"

	"anoa.com/kolabboard/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvitationNotPending is returned by AcceptInvitation when another
// request already moved the invitation out of pending.
var ErrInvitationNotPending = errors.New("invitation is not pending")

type OrganizationRepository interface {
	CreateWithOwner(ctx context.Context, org *entity.Organization) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error)
	FindForUser(ctx context.Context, userID uuid.UUID) ([]entity.Organization, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListMembers(ctx context.Context, organizationID uuid.UUID) ([]entity.OrganizationMember, error)
	IsMember(ctx context.Context, userID, organizationID uuid.UUID) (bool, error)
	DeleteMember(ctx context.Context, userID, organizationID uuid.UUID) (int64, error)

	CreateInvitation(ctx context.Context, invitation *entity.Invitation) error
	FindInvitation(ctx context.Context, id uuid.UUID) (*entity.Invitation, error)
	ListPendingInvitations(ctx context.Context, userID uuid.UUID) ([]entity.Invitation, error)
	AcceptInvitation(ctx context.Context, invitation *entity.Invitation) error
}

type organizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

// CreateWithOwner inserts the organization and the owner's membership row
// together.
func (r *organizationRepository) CreateWithOwner(ctx context.Context, org *entity.Organization) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members", "Invitations", "Boards", "Owner").Create(org).Error; err != nil {
			return err
		}

		member := entity.OrganizationMember{UserID: org.OwnerID, OrganizationID: org.ID}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		org.Members = []entity.OrganizationMember{member}
		return nil
	})
}

func membersByJoinTime(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func (r *organizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error) {
	var org entity.Organization
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Members", membersByJoinTime).
		Preload("Members.User").
		First(&org, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) FindForUser(ctx context.Context, userID uuid.UUID) ([]entity.Organization, error) {
	var orgs []entity.Organization
	memberOf := r.db.Model(&entity.OrganizationMember{}).Select("organization_id").Where("user_id = ?", userID)

	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Members", membersByJoinTime).
		Preload("Members.User").
		Where("owner_id = ? OR id IN (?)", userID, memberOf).
		Order("created_at ASC").
		Find(&orgs).Error
	return orgs, err
}

func (r *organizationRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	return r.db.WithContext(ctx).Model(&entity.Organization{}).Where("id = ?", id).Update("name", name).Error
}

func (r *organizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Organization{}, "id = ?", id).Error
}

func (r *organizationRepository) ListMembers(ctx context.Context, organizationID uuid.UUID) ([]entity.OrganizationMember, error) {
	var members []entity.OrganizationMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("organization_id = ?", organizationID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

func (r *organizationRepository) IsMember(ctx context.Context, userID, organizationID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.OrganizationMember{}).
		Where("user_id = ? AND organization_id = ?", userID, organizationID).
		Count(&count).Error
	return count > 0, err
}

func (r *organizationRepository) DeleteMember(ctx context.Context, userID, organizationID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ?", userID, organizationID).
		Delete(&entity.OrganizationMember{})
	return res.RowsAffected, res.Error
}

func (r *organizationRepository) CreateInvitation(ctx context.Context, invitation *entity.Invitation) error {
	return r.db.WithContext(ctx).Omit("Organization", "User").Create(invitation).Error
}

func (r *organizationRepository) FindInvitation(ctx context.Context, id uuid.UUID) (*entity.Invitation, error) {
	var invitation entity.Invitation
	if err := r.db.WithContext(ctx).First(&invitation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *organizationRepository) ListPendingInvitations(ctx context.Context, userID uuid.UUID) ([]entity.Invitation, error) {
	var invitations []entity.Invitation
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Where("user_id = ? AND LOWER(status) = ?", userID, entity.InvitationPending).
		Order("created_at DESC").
		Find(&invitations).Error
	return invitations, err
}

// AcceptInvitation flips the status and inserts the membership in one
// transaction. The status update is guarded on pending so a concurrent
// accept loses with ErrInvitationNotPending instead of inserting twice.
func (r *organizationRepository) AcceptInvitation(ctx context.Context, invitation *entity.Invitation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Invitation{}).
			Where("id = ? AND LOWER(status) = ?", invitation.ID, entity.InvitationPending).
			Update("status", entity.InvitationAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvitationNotPending
		}

		member := entity.OrganizationMember{UserID: invitation.UserID, OrganizationID: invitation.OrganizationID}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		invitation.Status = entity.InvitationAccepted
		return nil
	})
}
