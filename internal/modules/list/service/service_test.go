package list

import (
	"context"
	"errors"
	"testing"

	"anoa.com/kolabboard/internal/entity"
	accessRepo "anoa.com/kolabboard/internal/modules/access/repository"
	access "anoa.com/kolabboard/internal/modules/access/service"
	"anoa.com/kolabboard/internal/modules/list/dto"
	"anoa.com/kolabboard/internal/modules/list/repository"
	"anoa.com/kolabboard/internal/testutil"
	"anoa.com/kolabboard/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(repository.NewListRepository(db), access.NewService(accessRepo.NewAccessRepository(db)))
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, entity.RoleStudent)
	bob := testutil.CreateUser(t, db, entity.RoleStudent)
	b := testutil.CreateBoard(t, db, testutil.CreateOrganization(t, db, alice, bob), alice)

	todo, err := svc.Create(ctx, alice.ID, dto.CreateListRequest{Title: "Todo", BoardID: b.ID})
	require.NoError(t, err)
	doing, err := svc.Create(ctx, bob.ID, dto.CreateListRequest{Title: "Doing", BoardID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, todo.Position)
	assert.Equal(t, 1, doing.Position)

	testutil.CreateCard(t, db, b, todo)

	lists, err := svc.ListByBoard(ctx, bob.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "Todo", lists[0].Title)
	assert.Len(t, lists[0].Cards, 1)

	// Reorder: Doing moves in front of Todo.
	moved, err := svc.Update(ctx, bob.ID, doing.ID, dto.UpdateListRequest{Position: testutil.Ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, moved.Position)
	assert.Equal(t, "Doing", moved.Title)

	require.NoError(t, svc.Delete(ctx, alice.ID, todo.ID))
	var cards []entity.Card
	require.NoError(t, db.Find(&cards, "board_id = ?", b.ID).Error)
	require.Len(t, cards, 1)
	assert.Nil(t, cards[0].ListID)

	next, err := svc.Create(ctx, alice.ID, dto.CreateListRequest{Title: "Done", BoardID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, next.Position)
}

func TestListAccess(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(repository.NewListRepository(db), access.NewService(accessRepo.NewAccessRepository(db)))
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, entity.RoleStudent)
	outsider := testutil.CreateUser(t, db, entity.RoleStudent)
	b := testutil.CreateBoard(t, db, testutil.CreateOrganization(t, db, alice), alice)
	l := testutil.CreateList(t, db, b, 0)

	_, err := svc.Create(ctx, outsider.ID, dto.CreateListRequest{Title: "x", BoardID: b.ID})
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)

	_, err = svc.ListByBoard(ctx, outsider.ID, b.ID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)

	_, err = svc.Update(ctx, outsider.ID, l.ID, dto.UpdateListRequest{Title: testutil.Ptr("x")})
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)

	assert.True(t, errors.Is(svc.Delete(ctx, outsider.ID, l.ID), apperror.ErrForbidden))
	assert.True(t, errors.Is(svc.Delete(ctx, alice.ID, uuid.New()), apperror.ErrNotFound))
}
