package file

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"anoa.com/kolabboard/internal/entity"
	accessRepo "anoa.com/kolabboard/internal/modules/access/repository"
	access "anoa.com/kolabboard/internal/modules/access/service"
	"anoa.com/kolabboard/internal/modules/file/dto"
	"anoa.com/kolabboard/internal/modules/file/repository"
	"anoa.com/kolabboard/internal/testutil"
	"anoa.com/kolabboard/pkg/apperror"
	"anoa.com/kolabboard/pkg/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memStorage struct {
	objects map[string][]byte
	deleted []string
}

func (m *memStorage) Upload(_ context.Context, r io.Reader, _ int64, folder, fileName, _ string) (*storage.Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	key := folder + "/" + fileName
	m.objects[key] = data
	return &storage.Object{URL: "https://cdn.test/" + key, Key: key, Size: int64(len(data))}, nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.objects, key)
	return nil
}

func fileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestFileMetadata(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(repository.NewFileRepository(db), access.NewService(accessRepo.NewAccessRepository(db)), nil, zap.NewNop())
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, entity.RoleStudent)
	outsider := testutil.CreateUser(t, db, entity.RoleStudent)
	b := testutil.CreateBoard(t, db, testutil.CreateOrganization(t, db, alice), alice)
	c := testutil.CreateCard(t, db, b, nil)

	f, err := svc.Create(ctx, alice.ID, dto.CreateFileRequest{URL: "https://x.test/brief.pdf", Name: "brief.pdf", Type: "application/pdf", CardID: c.ID})
	require.NoError(t, err)

	files, err := svc.ListByCard(ctx, alice.ID, c.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, f.ID, files[0].ID)

	_, err = svc.Create(ctx, outsider.ID, dto.CreateFileRequest{URL: "https://x.test/a", Name: "a", CardID: c.ID})
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)

	_, err = svc.ListByCard(ctx, outsider.ID, c.ID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)

	_, err = svc.Create(ctx, alice.ID, dto.CreateFileRequest{URL: "https://x.test/a", Name: "a", CardID: uuid.New()})
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "got %v", err)

	assert.True(t, errors.Is(svc.Delete(ctx, outsider.ID, f.ID), apperror.ErrForbidden))
	require.NoError(t, svc.Delete(ctx, alice.ID, f.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, alice.ID, f.ID), apperror.ErrNotFound))
}

func TestFileUpload(t *testing.T) {
	db := testutil.NewDB(t)
	store := &memStorage{objects: map[string][]byte{}}
	svc := NewService(repository.NewFileRepository(db), access.NewService(accessRepo.NewAccessRepository(db)), store, zap.NewNop())
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, entity.RoleStudent)
	b := testutil.CreateBoard(t, db, testutil.CreateOrganization(t, db, alice), alice)
	c := testutil.CreateCard(t, db, b, nil)

	f, err := svc.Upload(ctx, alice.ID, c.ID, fileHeader(t, "notes.txt", "hello"))
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", f.Name)
	assert.Equal(t, "https://cdn.test/cards/notes.txt", f.URL)
	assert.Equal(t, []byte("hello"), store.objects["cards/notes.txt"])

	require.NoError(t, svc.Delete(ctx, alice.ID, f.ID))
	assert.Equal(t, []string{"cards/notes.txt"}, store.deleted)
}

func TestFileUploadDisabled(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(repository.NewFileRepository(db), access.NewService(accessRepo.NewAccessRepository(db)), nil, zap.NewNop())

	alice := testutil.CreateUser(t, db, entity.RoleStudent)
	b := testutil.CreateBoard(t, db, testutil.CreateOrganization(t, db, alice), alice)
	c := testutil.CreateCard(t, db, b, nil)

	_, err := svc.Upload(context.Background(), alice.ID, c.ID, fileHeader(t, "a.txt", "x"))
	assert.Equal(t, http.StatusServiceUnavailable, apperror.MapErrorToStatus(err))
}
