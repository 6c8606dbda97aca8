package board

import (
	"context"
	"errors"
	"testing"

	"anoa.com/kolabboard/internal/entity"
	accessRepo "anoa.com/kolabboard/internal/modules/access/repository"
	access "anoa.com/kolabboard/internal/modules/access/service"
	auditRepo "anoa.com/kolabboard/internal/modules/auditlog/repository"
	auditlog "anoa.com/kolabboard/internal/modules/auditlog/service"
	"anoa.com/kolabboard/internal/modules/board/dto"
	"anoa.com/kolabboard/internal/modules/board/repository"
	"anoa.com/kolabboard/internal/testutil"
	"anoa.com/kolabboard/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type failingRecorder struct{ calls int }

func (f *failingRecorder) Record(context.Context, uuid.UUID, string, *uuid.UUID, string) error {
	f.calls++
	return errors.New("audit store down")
}

func newService(db *gorm.DB) Service {
	acc := access.NewService(accessRepo.NewAccessRepository(db))
	audit := auditlog.NewService(auditRepo.NewAuditLogRepository(db), acc)
	return NewService(repository.NewBoardRepository(db), acc, audit, zap.NewNop())
}

func auditActions(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var actions []string
	require.NoError(t, db.Model(&entity.AuditLog{}).Order("created_at ASC").Pluck("action", &actions).Error)
	return actions
}

func TestCreate(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, entity.RoleStudent)
	dosen := testutil.CreateUser(t, db, entity.RoleFaculty)
	outsider := testutil.CreateUser(t, db, entity.RoleStudent)
	org := testutil.CreateOrganization(t, db, alice, dosen)

	b, err := svc.Create(ctx, alice.ID, entity.Role("student"), dto.CreateBoardRequest{Title: " Sprint 1 ", OrganizationID: org.ID})
	require.NoError(t, err)
	assert.Equal(t, "Sprint 1", b.Title)
	assert.Equal(t, alice.ID, b.CreatorID)
	assert.Equal(t, []string{entity.AuditBoardCreate}, auditActions(t, db))

	_, err = svc.Create(ctx, dosen.ID, entity.RoleFaculty, dto.CreateBoardRequest{Title: "x", OrganizationID: org.ID})
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)

	_, err = svc.Create(ctx, outsider.ID, entity.RoleStudent, dto.CreateBoardRequest{Title: "x", OrganizationID: org.ID})
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)

	_, err = svc.Create(ctx, alice.ID, entity.RoleStudent, dto.CreateBoardRequest{Title: "x", OrganizationID: uuid.New()})
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "got %v", err)
}

func TestGetAndList(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, entity.RoleStudent)
	bob := testutil.CreateUser(t, db, entity.RoleStudent)
	outsider := testutil.CreateUser(t, db, entity.RoleStudent)
	org := testutil.CreateOrganization(t, db, alice, bob)
	b := testutil.CreateBoard(t, db, org, alice)
	testutil.CreateList(t, db, b, 1)
	testutil.CreateList(t, db, b, 0)

	got, err := svc.Get(ctx, bob.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, got.Lists, 2)
	assert.Equal(t, 0, got.Lists[0].Position)
	assert.Equal(t, 1, got.Lists[1].Position)

	_, err = svc.Get(ctx, outsider.ID, b.ID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)

	_, err = svc.Get(ctx, alice.ID, uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "got %v", err)

	boards, err := svc.ListByOrganization(ctx, bob.ID, org.ID)
	require.NoError(t, err)
	assert.Len(t, boards, 1)

	_, err = svc.ListByOrganization(ctx, outsider.ID, org.ID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)
}

func TestUpdateAndDeleteAreCreatorOnly(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, entity.RoleStudent)
	bob := testutil.CreateUser(t, db, entity.RoleStudent)
	org := testutil.CreateOrganization(t, db, alice, bob)
	b := testutil.CreateBoard(t, db, org, alice)
	card := testutil.CreateCard(t, db, b, testutil.CreateList(t, db, b, 0))

	_, err := svc.Update(ctx, bob.ID, b.ID, dto.UpdateBoardRequest{Title: testutil.Ptr("mine now")})
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)
	assert.True(t, errors.Is(svc.Delete(ctx, bob.ID, b.ID), apperror.ErrForbidden))

	updated, err := svc.Update(ctx, alice.ID, b.ID, dto.UpdateBoardRequest{Background: testutil.Ptr("#fff")})
	require.NoError(t, err)
	assert.Equal(t, "Board", updated.Title)
	assert.Equal(t, "#fff", updated.Background)

	var stored entity.Board
	require.NoError(t, db.First(&stored, "id = ?", b.ID).Error)
	assert.Equal(t, "#fff", stored.Background)

	require.NoError(t, svc.Delete(ctx, alice.ID, b.ID))
	assert.ErrorIs(t, db.First(&entity.Card{}, "id = ?", card.ID).Error, gorm.ErrRecordNotFound)

	var logs []entity.AuditLog
	require.NoError(t, db.Order("created_at ASC").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, entity.AuditBoardUpdate, logs[0].Action)
	assert.Equal(t, entity.AuditBoardDelete, logs[1].Action)
	// The update entry survives the delete with its board reference cleared.
	assert.Nil(t, logs[0].BoardID)
	assert.Contains(t, logs[1].Details, b.ID.String())

	assert.True(t, errors.Is(svc.Delete(ctx, alice.ID, b.ID), apperror.ErrNotFound))
}

func TestAuditFailureDoesNotFailBoardWrite(t *testing.T) {
	db := testutil.NewDB(t)
	acc := access.NewService(accessRepo.NewAccessRepository(db))
	rec := &failingRecorder{}
	svc := NewService(repository.NewBoardRepository(db), acc, rec, zap.NewNop())

	alice := testutil.CreateUser(t, db, entity.RoleStudent)
	org := testutil.CreateOrganization(t, db, alice)

	b, err := svc.Create(context.Background(), alice.ID, entity.RoleStudent, dto.CreateBoardRequest{Title: "t", OrganizationID: org.ID})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.Equal(t, 1, rec.calls)
}
