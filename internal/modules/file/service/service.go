package file

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"anoa.com/kolabboard/internal/entity"
	access "anoa.com/kolabboard/internal/modules/access/service"
	"anoa.com/kolabboard/internal/modules/file/dto"
	"anoa.com/kolabboard/internal/modules/file/repository"
	"anoa.com/kolabboard/pkg/apperror"
	"anoa.com/kolabboard/pkg/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MaxUploadSize = 10 << 20
	uploadFolder  = "cards"
)

var errUploadsDisabled = apperror.New(http.StatusServiceUnavailable, "file uploads are not configured", apperror.ErrInternal)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateFileRequest) (*entity.File, error)
	Upload(ctx context.Context, userID, cardID uuid.UUID, header *multipart.FileHeader) (*entity.File, error)
	ListByCard(ctx context.Context, userID, cardID uuid.UUID) ([]entity.File, error)
	Delete(ctx context.Context, userID, fileID uuid.UUID) error
}

type service struct {
	repo    repository.FileRepository
	access  access.Service
	storage storage.FileStorage
	log     *zap.Logger
}

// NewService accepts a nil storage; uploads are then refused while metadata
// registration keeps working.
func NewService(repo repository.FileRepository, access access.Service, fileStorage storage.FileStorage, log *zap.Logger) Service {
	return &service{repo: repo, access: access, storage: fileStorage, log: log}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req dto.CreateFileRequest) (*entity.File, error) {
	if _, err := s.access.AuthorizeCard(ctx, userID, req.CardID); err != nil {
		return nil, err
	}

	f := &entity.File{
		URL:    strings.TrimSpace(req.URL),
		Name:   strings.TrimSpace(req.Name),
		Type:   strings.TrimSpace(req.Type),
		CardID: req.CardID,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, apperror.FromDB(err)
	}
	return f, nil
}

func (s *service) Upload(ctx context.Context, userID, cardID uuid.UUID, header *multipart.FileHeader) (*entity.File, error) {
	if _, err := s.access.AuthorizeCard(ctx, userID, cardID); err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, errUploadsDisabled
	}
	if header.Size > MaxUploadSize {
		return nil, fmt.Errorf("file exceeds %d MB: %w", MaxUploadSize>>20, apperror.ErrInvalidInput)
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	contentType := header.Header.Get("Content-Type")
	obj, err := s.storage.Upload(ctx, src, header.Size, uploadFolder, header.Filename, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	f := &entity.File{
		URL:        obj.URL,
		Name:       header.Filename,
		Type:       contentType,
		StorageKey: obj.Key,
		CardID:     cardID,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		s.removeObject(ctx, obj.Key)
		return nil, apperror.FromDB(err)
	}
	return f, nil
}

func (s *service) ListByCard(ctx context.Context, userID, cardID uuid.UUID) ([]entity.File, error) {
	if _, err := s.access.AuthorizeCard(ctx, userID, cardID); err != nil {
		return nil, err
	}
	return s.repo.FindByCard(ctx, cardID)
}

// Delete removes the row first; a stored object that fails to delete is
// logged and left behind.
func (s *service) Delete(ctx context.Context, userID, fileID uuid.UUID) error {
	f, err := s.access.AuthorizeFile(ctx, userID, fileID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, f.ID); err != nil {
		return err
	}
	if f.StorageKey != "" {
		s.removeObject(ctx, f.StorageKey)
	}
	return nil
}

func (s *service) removeObject(ctx context.Context, key string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.log.Warn("failed to delete stored object", zap.String("key", key), zap.Error(err))
	}
}
