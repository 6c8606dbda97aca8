package organization

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anoa.com/kolabboard/internal/entity"
	access "anoa.com/kolabboard/internal/modules/access/service"
	"anoa.com/kolabboard/internal/modules/organization/dto"
	"anoa.com/kolabboard/internal/modules/organization/repository"
	userRepo "anoa.com/kolabboard/internal/modules/user/repository"
	"anoa.com/kolabboard/pkg/apperror"
	commonDto "anoa.com/kolabboard/pkg/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notifier delivers a short message to a user. Delivery failures never fail
// the operation that triggered them.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, content string) error
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, role entity.Role, req dto.CreateOrganizationRequest) (*entity.Organization, error)
	MyWorkspaces(ctx context.Context, userID uuid.UUID) ([]entity.Organization, error)
	Get(ctx context.Context, userID, organizationID uuid.UUID) (*entity.Organization, error)
	Rename(ctx context.Context, userID, organizationID uuid.UUID, req dto.UpdateOrganizationRequest) (*entity.Organization, error)
	Delete(ctx context.Context, userID, organizationID uuid.UUID) error

	Members(ctx context.Context, userID, organizationID uuid.UUID) ([]entity.OrganizationMember, error)
	Leave(ctx context.Context, userID, organizationID uuid.UUID) error
	Kick(ctx context.Context, userID, organizationID, targetID uuid.UUID) error
	CheckUser(ctx context.Context, email string) (*commonDto.UserResponse, error)

	Invite(ctx context.Context, userID, organizationID uuid.UUID, req dto.InviteRequest) (*entity.Invitation, error)
	PendingInvitations(ctx context.Context, userID uuid.UUID) ([]entity.Invitation, error)
	AcceptInvitation(ctx context.Context, userID, organizationID, invitationID uuid.UUID) error
}

type service struct {
	repo     repository.OrganizationRepository
	userRepo userRepo.UserRepository
	access   access.Service
	notifier Notifier
	log      *zap.Logger
}

func NewService(repo repository.OrganizationRepository, userRepo userRepo.UserRepository, access access.Service, notifier Notifier, log *zap.Logger) Service {
	return &service{
		repo:     repo,
		userRepo: userRepo,
		access:   access,
		notifier: notifier,
		log:      log,
	}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, role entity.Role, req dto.CreateOrganizationRequest) (*entity.Organization, error) {
	if !role.Is(entity.RoleStudent) {
		return nil, fmt.Errorf("only students can create an organization: %w", apperror.ErrForbidden)
	}

	org := &entity.Organization{
		Name:    strings.TrimSpace(req.Name),
		OwnerID: userID,
	}
	if err := s.repo.CreateWithOwner(ctx, org); err != nil {
		return nil, apperror.FromDB(err)
	}
	return org, nil
}

func (s *service) MyWorkspaces(ctx context.Context, userID uuid.UUID) ([]entity.Organization, error) {
	return s.repo.FindForUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, organizationID uuid.UUID) (*entity.Organization, error) {
	if _, err := s.access.AuthorizeOrganization(ctx, userID, organizationID); err != nil {
		return nil, err
	}

	org, err := s.repo.FindByID(ctx, organizationID)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return org, nil
}

func (s *service) Rename(ctx context.Context, userID, organizationID uuid.UUID, req dto.UpdateOrganizationRequest) (*entity.Organization, error) {
	org, err := s.access.AuthorizeOrganizationOwner(ctx, userID, organizationID)
	if err != nil {
		return nil, err
	}

	org.Name = strings.TrimSpace(req.Name)
	if err := s.repo.UpdateName(ctx, org.ID, org.Name); err != nil {
		return nil, err
	}
	return org, nil
}

// Delete removes the organization; members, invitations and boards go with
// it through the foreign keys.
func (s *service) Delete(ctx context.Context, userID, organizationID uuid.UUID) error {
	org, err := s.access.AuthorizeOrganizationOwner(ctx, userID, organizationID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, org.ID)
}

func (s *service) Members(ctx context.Context, userID, organizationID uuid.UUID) ([]entity.OrganizationMember, error) {
	if _, err := s.access.AuthorizeOrganization(ctx, userID, organizationID); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, organizationID)
}

func (s *service) Leave(ctx context.Context, userID, organizationID uuid.UUID) error {
	owner, err := s.access.IsOrganizationOwner(ctx, userID, organizationID)
	if err != nil {
		return err
	}
	if owner {
		return fmt.Errorf("the owner cannot leave their own organization: %w", apperror.ErrForbidden)
	}

	removed, err := s.repo.DeleteMember(ctx, userID, organizationID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("membership not found: %w", apperror.ErrNotFound)
	}
	return nil
}

func (s *service) Kick(ctx context.Context, userID, organizationID, targetID uuid.UUID) error {
	org, err := s.access.AuthorizeOrganizationOwner(ctx, userID, organizationID)
	if err != nil {
		return err
	}
	if targetID == org.OwnerID {
		return fmt.Errorf("the owner cannot kick themselves: %w", apperror.ErrForbidden)
	}

	removed, err := s.repo.DeleteMember(ctx, targetID, org.ID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("membership not found: %w", apperror.ErrNotFound)
	}
	return nil
}

func (s *service) CheckUser(ctx context.Context, email string) (*commonDto.UserResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return commonDto.ToUserResponse(user), nil
}

func (s *service) Invite(ctx context.Context, userID, organizationID uuid.UUID, req dto.InviteRequest) (*entity.Invitation, error) {
	org, err := s.access.AuthorizeOrganizationOwner(ctx, userID, organizationID)
	if err != nil {
		return nil, err
	}

	invitee, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	member, err := s.repo.IsMember(ctx, invitee.ID, org.ID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, fmt.Errorf("user is already a member: %w", apperror.ErrConflict)
	}

	invitation := &entity.Invitation{
		OrganizationID: org.ID,
		UserID:         invitee.ID,
		Email:          invitee.Email,
		Status:         entity.InvitationPending,
	}
	if err := s.repo.CreateInvitation(ctx, invitation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("user already has a pending invitation: %w", apperror.ErrConflict)
		}
		return nil, err
	}

	s.notify(ctx, invitee.ID, fmt.Sprintf("You have been invited to join %s", org.Name))
	return invitation, nil
}

func (s *service) PendingInvitations(ctx context.Context, userID uuid.UUID) ([]entity.Invitation, error) {
	return s.repo.ListPendingInvitations(ctx, userID)
}

func (s *service) AcceptInvitation(ctx context.Context, userID, organizationID, invitationID uuid.UUID) error {
	invitation, err := s.repo.FindInvitation(ctx, invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("invitation not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	switch {
	case invitation.OrganizationID != organizationID:
		return fmt.Errorf("invitation does not belong to this organization: %w", apperror.ErrInvalidState)
	case invitation.UserID != userID:
		return fmt.Errorf("invitation is not addressed to you: %w", apperror.ErrInvalidState)
	case !strings.EqualFold(invitation.Status, entity.InvitationPending):
		return fmt.Errorf("invitation already %s: %w", strings.ToLower(invitation.Status), apperror.ErrInvalidState)
	}

	if err := s.repo.AcceptInvitation(ctx, invitation); err != nil {
		switch {
		case errors.Is(err, repository.ErrInvitationNotPending):
			return fmt.Errorf("invitation already accepted: %w", apperror.ErrInvalidState)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return fmt.Errorf("already a member of this organization: %w", apperror.ErrConflict)
		}
		return err
	}

	org, err := s.repo.FindByID(ctx, invitation.OrganizationID)
	if err != nil {
		s.log.Warn("accepted invitation for missing organization", zap.String("invitation_id", invitation.ID.String()), zap.Error(err))
		return nil
	}
	s.notify(ctx, org.OwnerID, fmt.Sprintf("%s accepted the invitation to %s", invitation.Email, org.Name))
	return nil
}

func (s *service) notify(ctx context.Context, userID uuid.UUID, content string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, content); err != nil {
		s.log.Warn("failed to send notification", zap.String("user_id", userID.String()), zap.Error(err))
	}
}
