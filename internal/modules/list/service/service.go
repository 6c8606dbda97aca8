package list

import (
	"context"
	"strings"

	"anoa.com/kolabboard/internal/entity"
	access "anoa.com/kolabboard/internal/modules/access/service"
	"anoa.com/kolabboard/internal/modules/list/dto"
	"anoa.com/kolabboard/internal/modules/list/repository"
	"anoa.com/kolabboard/pkg/apperror"
	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateListRequest) (*entity.List, error)
	ListByBoard(ctx context.Context, userID, boardID uuid.UUID) ([]entity.List, error)
	Update(ctx context.Context, userID, listID uuid.UUID, req dto.UpdateListRequest) (*entity.List, error)
	Delete(ctx context.Context, userID, listID uuid.UUID) error
}

type service struct {
	repo   repository.ListRepository
	access access.Service
}

func NewService(repo repository.ListRepository, access access.Service) Service {
	return &service{repo: repo, access: access}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req dto.CreateListRequest) (*entity.List, error) {
	if _, err := s.access.AuthorizeBoard(ctx, userID, req.BoardID); err != nil {
		return nil, err
	}

	l := &entity.List{Title: strings.TrimSpace(req.Title), BoardID: req.BoardID}
	if err := s.repo.CreateAtEnd(ctx, l); err != nil {
		return nil, apperror.FromDB(err)
	}
	return l, nil
}

func (s *service) ListByBoard(ctx context.Context, userID, boardID uuid.UUID) ([]entity.List, error) {
	if _, err := s.access.AuthorizeBoard(ctx, userID, boardID); err != nil {
		return nil, err
	}
	return s.repo.FindByBoard(ctx, boardID)
}

func (s *service) Update(ctx context.Context, userID, listID uuid.UUID, req dto.UpdateListRequest) (*entity.List, error) {
	l, err := s.access.AuthorizeList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		l.Title = strings.TrimSpace(*req.Title)
		updates["title"] = l.Title
	}
	if req.Position != nil {
		l.Position = *req.Position
		updates["position"] = l.Position
	}
	if len(updates) == 0 {
		return l, nil
	}

	if err := s.repo.Update(ctx, l.ID, updates); err != nil {
		return nil, apperror.FromDB(err)
	}
	return l, nil
}

// Delete removes the list. Its cards stay on the board without a list.
func (s *service) Delete(ctx context.Context, userID, listID uuid.UUID) error {
	l, err := s.access.AuthorizeList(ctx, userID, listID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, l.ID)
}
