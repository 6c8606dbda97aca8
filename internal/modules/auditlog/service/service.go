package auditlog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"anoa.com/kolabboard/internal/entity"
	access "anoa.com/kolabboard/internal/modules/access/service"
	"anoa.com/kolabboard/internal/modules/auditlog/dto"
	"anoa.com/kolabboard/internal/modules/auditlog/repository"
	"anoa.com/kolabboard/pkg/apperror"
	"github.com/google/uuid"
)

const dateOnly = "2006-01-02"

type Service interface {
	Record(ctx context.Context, userID uuid.UUID, action string, boardID *uuid.UUID, details string) error
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateAuditLogRequest) (*entity.AuditLog, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.AuditLogFilter) ([]entity.AuditLog, error)
}

type service struct {
	repo   repository.AuditLogRepository
	access access.Service
}

func NewService(repo repository.AuditLogRepository, access access.Service) Service {
	return &service{repo: repo, access: access}
}

// Record appends a log entry without any authorization; callers have already
// authorized the action being recorded.
func (s *service) Record(ctx context.Context, userID uuid.UUID, action string, boardID *uuid.UUID, details string) error {
	return s.repo.Create(ctx, &entity.AuditLog{
		Action:  action,
		BoardID: boardID,
		Details: details,
		UserID:  userID,
	})
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req dto.CreateAuditLogRequest) (*entity.AuditLog, error) {
	if req.BoardID != nil {
		if _, err := s.access.AuthorizeBoard(ctx, userID, *req.BoardID); err != nil {
			return nil, err
		}
	}

	log := &entity.AuditLog{
		Action:  strings.TrimSpace(req.Action),
		BoardID: req.BoardID,
		Details: req.Details,
		UserID:  userID,
	}
	if err := s.repo.Create(ctx, log); err != nil {
		return nil, apperror.FromDB(err)
	}
	return log, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, filter dto.AuditLogFilter) ([]entity.AuditLog, error) {
	q := repository.Query{Viewer: userID, Action: strings.TrimSpace(filter.Action)}

	if filter.UserID != "" {
		id, err := uuid.Parse(filter.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user_id: %w", apperror.ErrInvalidInput)
		}
		q.UserID = &id
	}

	if filter.BoardID != "" {
		id, err := uuid.Parse(filter.BoardID)
		if err != nil {
			return nil, fmt.Errorf("invalid board_id: %w", apperror.ErrInvalidInput)
		}
		if _, err := s.access.AuthorizeBoard(ctx, userID, id); err != nil {
			return nil, err
		}
		q.BoardID = &id
	}

	var err error
	if q.From, err = parseBound(filter.StartDate, false); err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", apperror.ErrInvalidInput)
	}
	if q.To, err = parseBound(filter.EndDate, true); err != nil {
		return nil, fmt.Errorf("invalid end_date: %w", apperror.ErrInvalidInput)
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return nil, fmt.Errorf("start_date is after end_date: %w", apperror.ErrInvalidInput)
	}

	return s.repo.Find(ctx, q)
}

// parseBound reads an RFC3339 timestamp or a plain date. A plain date used
// as an upper bound extends to the last instant of that day.
func parseBound(raw string, upper bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}

	t, err := time.Parse(dateOnly, raw)
	if err != nil {
		return nil, err
	}
	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
