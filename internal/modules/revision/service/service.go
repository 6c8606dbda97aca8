package revision

import (
	"context"
	"fmt"

	"anoa.com/kolabboard/internal/entity"
	access "anoa.com/kolabboard/internal/modules/access/service"
	"anoa.com/kolabboard/internal/modules/revision/dto"
	"anoa.com/kolabboard/internal/modules/revision/repository"
	"anoa.com/kolabboard/pkg/apperror"
	"anoa.com/kolabboard/pkg/sanitize"
	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateRevisionRequest) (*entity.Revision, error)
	ListByCard(ctx context.Context, userID, cardID uuid.UUID) ([]entity.Revision, error)
}

type service struct {
	repo   repository.RevisionRepository
	access access.Service
}

func NewService(repo repository.RevisionRepository, access access.Service) Service {
	return &service{repo: repo, access: access}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req dto.CreateRevisionRequest) (*entity.Revision, error) {
	if _, err := s.access.AuthorizeCard(ctx, userID, req.CardID); err != nil {
		return nil, err
	}

	message := sanitize.Plain(req.Message)
	if message == "" {
		return nil, fmt.Errorf("message is empty after removing markup: %w", apperror.ErrInvalidInput)
	}

	rev := &entity.Revision{Message: message, CardID: req.CardID, UserID: userID}
	if err := s.repo.Create(ctx, rev); err != nil {
		return nil, apperror.FromDB(err)
	}
	return rev, nil
}

func (s *service) ListByCard(ctx context.Context, userID, cardID uuid.UUID) ([]entity.Revision, error) {
	if _, err := s.access.AuthorizeCard(ctx, userID, cardID); err != nil {
		return nil, err
	}
	return s.repo.FindByCard(ctx, cardID)
}
