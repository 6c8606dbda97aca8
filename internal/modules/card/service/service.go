package card

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anoa.com/kolabboard/internal/entity"
	access "anoa.com/kolabboard/internal/modules/access/service"
	"anoa.com/kolabboard/internal/modules/card/dto"
	"anoa.com/kolabboard/internal/modules/card/repository"
	"anoa.com/kolabboard/pkg/apperror"
	"anoa.com/kolabboard/pkg/sanitize"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultSearchLimit = 20

// Indexer mirrors cards into a full-text index. A nil Indexer disables
// indexing and search falls back to the database.
type Indexer interface {
	Index(ctx context.Context, card *entity.Card) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, boardIDs []uuid.UUID, limit int) ([]uuid.UUID, error)
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateCardRequest) (*entity.Card, error)
	ListByBoard(ctx context.Context, userID, boardID uuid.UUID) ([]entity.Card, error)
	Get(ctx context.Context, userID, cardID uuid.UUID) (*entity.Card, error)
	Update(ctx context.Context, userID, cardID uuid.UUID, req dto.UpdateCardRequest) (*entity.Card, error)
	Delete(ctx context.Context, userID, cardID uuid.UUID) error
	Search(ctx context.Context, userID uuid.UUID, query dto.SearchQuery) ([]entity.Card, error)
}

type service struct {
	repo    repository.CardRepository
	access  access.Service
	indexer Indexer
	log     *zap.Logger
}

func NewService(repo repository.CardRepository, access access.Service, indexer Indexer, log *zap.Logger) Service {
	return &service{repo: repo, access: access, indexer: indexer, log: log}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req dto.CreateCardRequest) (*entity.Card, error) {
	if _, err := s.access.AuthorizeBoard(ctx, userID, req.BoardID); err != nil {
		return nil, err
	}
	if req.ListID != nil {
		if err := s.checkList(ctx, userID, req.BoardID, *req.ListID); err != nil {
			return nil, err
		}
	}

	card := &entity.Card{
		Title:       strings.TrimSpace(req.Title),
		Description: sanitize.Rich(req.Description),
		Deadline:    req.Deadline,
		BoardID:     req.BoardID,
		ListID:      req.ListID,
	}
	if err := s.repo.Create(ctx, card); err != nil {
		return nil, apperror.FromDB(err)
	}

	s.index(ctx, card)
	return card, nil
}

func (s *service) ListByBoard(ctx context.Context, userID, boardID uuid.UUID) ([]entity.Card, error) {
	if _, err := s.access.AuthorizeBoard(ctx, userID, boardID); err != nil {
		return nil, err
	}
	return s.repo.FindByBoard(ctx, boardID)
}

func (s *service) Get(ctx context.Context, userID, cardID uuid.UUID) (*entity.Card, error) {
	if _, err := s.access.AuthorizeCard(ctx, userID, cardID); err != nil {
		return nil, err
	}

	card, err := s.repo.FindByID(ctx, cardID)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return card, nil
}

// Update is gated by board access, not by who created the card.
func (s *service) Update(ctx context.Context, userID, cardID uuid.UUID, req dto.UpdateCardRequest) (*entity.Card, error) {
	card, err := s.access.AuthorizeCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	if req.ClearDeadline && req.Deadline != nil {
		return nil, fmt.Errorf("deadline and clear_deadline are exclusive: %w", apperror.ErrInvalidInput)
	}
	if req.ClearList && req.ListID != nil {
		return nil, fmt.Errorf("list_id and clear_list are exclusive: %w", apperror.ErrInvalidInput)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		card.Title = strings.TrimSpace(*req.Title)
		updates["title"] = card.Title
	}
	if req.Description != nil {
		card.Description = sanitize.Rich(*req.Description)
		updates["description"] = card.Description
	}
	if req.Deadline != nil {
		card.Deadline = req.Deadline
		updates["deadline"] = *req.Deadline
	}
	if req.ClearDeadline {
		card.Deadline = nil
		updates["deadline"] = nil
	}
	if req.ListID != nil {
		if err := s.checkList(ctx, userID, card.BoardID, *req.ListID); err != nil {
			return nil, err
		}
		card.ListID = req.ListID
		updates["list_id"] = *req.ListID
	}
	if req.ClearList {
		card.ListID = nil
		updates["list_id"] = nil
	}
	if len(updates) == 0 {
		return card, nil
	}

	if err := s.repo.Update(ctx, card.ID, updates); err != nil {
		return nil, apperror.FromDB(err)
	}

	s.index(ctx, card)
	return card, nil
}

func (s *service) Delete(ctx context.Context, userID, cardID uuid.UUID) error {
	card, err := s.access.AuthorizeCard(ctx, userID, cardID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, card.ID); err != nil {
		return err
	}

	if s.indexer != nil {
		if err := s.indexer.Delete(ctx, card.ID); err != nil {
			s.log.Warn("failed to remove card from index", zap.String("card_id", card.ID.String()), zap.Error(err))
		}
	}
	return nil
}

// Search only ever looks at boards the caller can access. When the index is
// unavailable the query runs against the database instead.
func (s *service) Search(ctx context.Context, userID uuid.UUID, query dto.SearchQuery) ([]entity.Card, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var boardIDs []uuid.UUID
	if query.BoardID != "" {
		boardID, err := uuid.Parse(query.BoardID)
		if err != nil {
			return nil, fmt.Errorf("invalid board_id: %w", apperror.ErrInvalidInput)
		}
		if _, err := s.access.AuthorizeBoard(ctx, userID, boardID); err != nil {
			return nil, err
		}
		boardIDs = []uuid.UUID{boardID}
	} else {
		ids, err := s.repo.AccessibleBoardIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		boardIDs = ids
	}
	if len(boardIDs) == 0 {
		return []entity.Card{}, nil
	}

	if s.indexer != nil {
		ids, err := s.indexer.Search(ctx, query.Q, boardIDs, limit)
		if err == nil {
			return s.inRankOrder(ctx, ids, boardIDs)
		}
		s.log.Warn("card index search failed, falling back to database", zap.Error(err))
	}

	return s.repo.SearchText(ctx, query.Q, boardIDs, limit)
}

func (s *service) inRankOrder(ctx context.Context, ids, boardIDs []uuid.UUID) ([]entity.Card, error) {
	cards, err := s.repo.FindByIDs(ctx, ids, boardIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]entity.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	ordered := make([]entity.Card, 0, len(cards))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

// checkList requires listID to exist on boardID.
func (s *service) checkList(ctx context.Context, userID, boardID, listID uuid.UUID) error {
	l, err := s.access.AuthorizeList(ctx, userID, listID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) || errors.Is(err, apperror.ErrForbidden) {
			return fmt.Errorf("list does not belong to this board: %w", apperror.ErrInvalidInput)
		}
		return err
	}
	if l.BoardID != boardID {
		return fmt.Errorf("list does not belong to this board: %w", apperror.ErrInvalidInput)
	}
	return nil
}

func (s *service) index(ctx context.Context, card *entity.Card) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.Index(ctx, card); err != nil {
		s.log.Warn("failed to index card", zap.String("card_id", card.ID.String()), zap.Error(err))
	}
}
