package board

import (
	"context"
	"fmt"
	"strings"

	"anoa.com/kolabboard/internal/entity"
	access "anoa.com/kolabboard/internal/modules/access/service"
	"anoa.com/kolabboard/internal/modules/board/dto"
	"anoa.com/kolabboard/internal/modules/board/repository"
	"anoa.com/kolabboard/pkg/apperror"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditRecorder appends an audit entry. A failed record is logged and never
// fails the board operation.
type AuditRecorder interface {
	Record(ctx context.Context, userID uuid.UUID, action string, boardID *uuid.UUID, details string) error
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, role entity.Role, req dto.CreateBoardRequest) (*entity.Board, error)
	ListByOrganization(ctx context.Context, userID, organizationID uuid.UUID) ([]entity.Board, error)
	Get(ctx context.Context, userID, boardID uuid.UUID) (*entity.Board, error)
	Update(ctx context.Context, userID, boardID uuid.UUID, req dto.UpdateBoardRequest) (*entity.Board, error)
	Delete(ctx context.Context, userID, boardID uuid.UUID) error
}

type service struct {
	repo   repository.BoardRepository
	access access.Service
	audit  AuditRecorder
	log    *zap.Logger
}

func NewService(repo repository.BoardRepository, access access.Service, audit AuditRecorder, log *zap.Logger) Service {
	return &service{repo: repo, access: access, audit: audit, log: log}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, role entity.Role, req dto.CreateBoardRequest) (*entity.Board, error) {
	if _, err := s.access.AuthorizeOrganization(ctx, userID, req.OrganizationID); err != nil {
		return nil, err
	}
	if !role.Is(entity.RoleStudent) {
		return nil, fmt.Errorf("only students can create a board: %w", apperror.ErrForbidden)
	}

	board := &entity.Board{
		Title:          strings.TrimSpace(req.Title),
		Background:     strings.TrimSpace(req.Background),
		OrganizationID: req.OrganizationID,
		CreatorID:      userID,
	}
	if err := s.repo.Create(ctx, board); err != nil {
		return nil, apperror.FromDB(err)
	}

	s.record(ctx, userID, entity.AuditBoardCreate, &board.ID, fmt.Sprintf("created board %q", board.Title))
	return board, nil
}

func (s *service) ListByOrganization(ctx context.Context, userID, organizationID uuid.UUID) ([]entity.Board, error) {
	if _, err := s.access.AuthorizeOrganization(ctx, userID, organizationID); err != nil {
		return nil, err
	}
	return s.repo.FindByOrganization(ctx, organizationID)
}

func (s *service) Get(ctx context.Context, userID, boardID uuid.UUID) (*entity.Board, error) {
	if _, err := s.access.AuthorizeBoard(ctx, userID, boardID); err != nil {
		return nil, err
	}

	board, err := s.repo.FindByID(ctx, boardID)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return board, nil
}

func (s *service) Update(ctx context.Context, userID, boardID uuid.UUID, req dto.UpdateBoardRequest) (*entity.Board, error) {
	board, err := s.access.AuthorizeBoardCreator(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	var changed []string
	if req.Title != nil {
		board.Title = strings.TrimSpace(*req.Title)
		updates["title"] = board.Title
		changed = append(changed, "title")
	}
	if req.Background != nil {
		board.Background = strings.TrimSpace(*req.Background)
		updates["background"] = board.Background
		changed = append(changed, "background")
	}
	if len(updates) == 0 {
		return board, nil
	}

	if err := s.repo.Update(ctx, board.ID, updates); err != nil {
		return nil, apperror.FromDB(err)
	}

	s.record(ctx, userID, entity.AuditBoardUpdate, &board.ID, "updated "+strings.Join(changed, ", "))
	return board, nil
}

// Delete removes the board together with its lists, cards, files and
// revisions. Existing audit entries keep their row with board_id cleared.
func (s *service) Delete(ctx context.Context, userID, boardID uuid.UUID) error {
	board, err := s.access.AuthorizeBoardCreator(ctx, userID, boardID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, board.ID); err != nil {
		return err
	}

	s.record(ctx, userID, entity.AuditBoardDelete, nil, fmt.Sprintf("deleted board %q (%s)", board.Title, board.ID))
	return nil
}

func (s *service) record(ctx context.Context, userID uuid.UUID, action string, boardID *uuid.UUID, details string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, userID, action, boardID, details); err != nil {
		s.log.Warn("failed to record audit log",
			zap.String("action", action),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}
