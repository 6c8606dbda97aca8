// Package access is the single place where ownership and membership rules
// are decided.
//
// The boolean predicates answer a yes/no question and only fail on store
// errors; a missing target simply yields false. The Authorize* helpers apply
// the request contract used by every resource service: resolve the target
// (ErrNotFound when absent), then evaluate the predicate (ErrForbidden when
// false).
package access

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/kolabboard/internal/entity"
	"anoa.com/kolabboard/internal/modules/access/repository"
	"anoa.com/kolabboard/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	IsOrganizationMember(ctx context.Context, userID, organizationID uuid.UUID) (bool, error)
	IsOrganizationOwner(ctx context.Context, userID, organizationID uuid.UUID) (bool, error)
	IsBoardCreator(ctx context.Context, userID, boardID uuid.UUID) (bool, error)
	HasAccessToBoard(ctx context.Context, userID, boardID uuid.UUID) (bool, error)
	HasAccessToList(ctx context.Context, userID, listID uuid.UUID) (bool, error)
	HasAccessToCard(ctx context.Context, userID, cardID uuid.UUID) (bool, error)
	HasAccessToFile(ctx context.Context, userID, fileID uuid.UUID) (bool, error)
	SharesOrganization(ctx context.Context, userID, otherID uuid.UUID) (bool, error)

	AuthorizeOrganization(ctx context.Context, userID, organizationID uuid.UUID) (*entity.Organization, error)
	AuthorizeOrganizationOwner(ctx context.Context, userID, organizationID uuid.UUID) (*entity.Organization, error)
	AuthorizeBoard(ctx context.Context, userID, boardID uuid.UUID) (*entity.Board, error)
	AuthorizeBoardCreator(ctx context.Context, userID, boardID uuid.UUID) (*entity.Board, error)
	AuthorizeList(ctx context.Context, userID, listID uuid.UUID) (*entity.List, error)
	AuthorizeCard(ctx context.Context, userID, cardID uuid.UUID) (*entity.Card, error)
	AuthorizeFile(ctx context.Context, userID, fileID uuid.UUID) (*entity.File, error)
}

type service struct {
	repo repository.AccessRepository
}

func NewService(repo repository.AccessRepository) Service {
	return &service{repo: repo}
}

func (s *service) IsOrganizationMember(ctx context.Context, userID, organizationID uuid.UUID) (bool, error) {
	return s.repo.MemberExists(ctx, userID, organizationID)
}

func (s *service) IsOrganizationOwner(ctx context.Context, userID, organizationID uuid.UUID) (bool, error) {
	org, err := s.repo.FindOrganization(ctx, organizationID)
	if err != nil {
		return falseIfMissing(err)
	}
	return org.OwnerID == userID, nil
}

func (s *service) IsBoardCreator(ctx context.Context, userID, boardID uuid.UUID) (bool, error) {
	board, err := s.repo.FindBoard(ctx, boardID)
	if err != nil {
		return falseIfMissing(err)
	}
	return board.CreatorID == userID, nil
}

func (s *service) HasAccessToBoard(ctx context.Context, userID, boardID uuid.UUID) (bool, error) {
	board, err := s.repo.FindBoard(ctx, boardID)
	if err != nil {
		return falseIfMissing(err)
	}
	return s.IsOrganizationMember(ctx, userID, board.OrganizationID)
}

func (s *service) HasAccessToList(ctx context.Context, userID, listID uuid.UUID) (bool, error) {
	list, err := s.repo.FindList(ctx, listID)
	if err != nil {
		return falseIfMissing(err)
	}
	return s.HasAccessToBoard(ctx, userID, list.BoardID)
}

func (s *service) HasAccessToCard(ctx context.Context, userID, cardID uuid.UUID) (bool, error) {
	card, err := s.repo.FindCard(ctx, cardID)
	if err != nil {
		return falseIfMissing(err)
	}
	return s.HasAccessToBoard(ctx, userID, card.BoardID)
}

func (s *service) HasAccessToFile(ctx context.Context, userID, fileID uuid.UUID) (bool, error) {
	file, err := s.repo.FindFile(ctx, fileID)
	if err != nil {
		return falseIfMissing(err)
	}
	return s.HasAccessToCard(ctx, userID, file.CardID)
}

// SharesOrganization reports whether both users belong to at least one common
// organization. A user always shares with themselves.
func (s *service) SharesOrganization(ctx context.Context, userID, otherID uuid.UUID) (bool, error) {
	if userID == otherID {
		return true, nil
	}
	return s.repo.SharesOrganization(ctx, userID, otherID)
}

func (s *service) AuthorizeOrganization(ctx context.Context, userID, organizationID uuid.UUID) (*entity.Organization, error) {
	org, err := s.repo.FindOrganization(ctx, organizationID)
	if err != nil {
		return nil, resolveErr("organization", err)
	}
	if err := s.require(s.IsOrganizationMember(ctx, userID, org.ID)); err != nil {
		return nil, fmt.Errorf("not a member of this organization: %w", err)
	}
	return org, nil
}

func (s *service) AuthorizeOrganizationOwner(ctx context.Context, userID, organizationID uuid.UUID) (*entity.Organization, error) {
	org, err := s.repo.FindOrganization(ctx, organizationID)
	if err != nil {
		return nil, resolveErr("organization", err)
	}
	if org.OwnerID != userID {
		return nil, fmt.Errorf("only the organization owner can do this: %w", apperror.ErrForbidden)
	}
	return org, nil
}

func (s *service) AuthorizeBoard(ctx context.Context, userID, boardID uuid.UUID) (*entity.Board, error) {
	board, err := s.repo.FindBoard(ctx, boardID)
	if err != nil {
		return nil, resolveErr("board", err)
	}
	if err := s.require(s.IsOrganizationMember(ctx, userID, board.OrganizationID)); err != nil {
		return nil, fmt.Errorf("no access to this board: %w", err)
	}
	return board, nil
}

func (s *service) AuthorizeBoardCreator(ctx context.Context, userID, boardID uuid.UUID) (*entity.Board, error) {
	board, err := s.repo.FindBoard(ctx, boardID)
	if err != nil {
		return nil, resolveErr("board", err)
	}
	if board.CreatorID != userID {
		return nil, fmt.Errorf("only the board creator can do this: %w", apperror.ErrForbidden)
	}
	return board, nil
}

func (s *service) AuthorizeList(ctx context.Context, userID, listID uuid.UUID) (*entity.List, error) {
	list, err := s.repo.FindList(ctx, listID)
	if err != nil {
		return nil, resolveErr("list", err)
	}
	if err := s.require(s.HasAccessToBoard(ctx, userID, list.BoardID)); err != nil {
		return nil, fmt.Errorf("no access to this list: %w", err)
	}
	return list, nil
}

func (s *service) AuthorizeCard(ctx context.Context, userID, cardID uuid.UUID) (*entity.Card, error) {
	card, err := s.repo.FindCard(ctx, cardID)
	if err != nil {
		return nil, resolveErr("card", err)
	}
	if err := s.require(s.HasAccessToBoard(ctx, userID, card.BoardID)); err != nil {
		return nil, fmt.Errorf("no access to this card: %w", err)
	}
	return card, nil
}

func (s *service) AuthorizeFile(ctx context.Context, userID, fileID uuid.UUID) (*entity.File, error) {
	file, err := s.repo.FindFile(ctx, fileID)
	if err != nil {
		return nil, resolveErr("file", err)
	}
	if err := s.require(s.HasAccessToCard(ctx, userID, file.CardID)); err != nil {
		return nil, fmt.Errorf("no access to this file: %w", err)
	}
	return file, nil
}

func (s *service) require(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrForbidden
	}
	return nil
}

func falseIfMissing(err error) (bool, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func resolveErr(kind string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s not found: %w", kind, apperror.ErrNotFound)
	}
	return err
}
