package access

import (
	"context"
	"errors"
	"testing"

	"anoa.com/kolabboard/internal/entity"
	"anoa.com/kolabboard/internal/modules/access/repository"
	"anoa.com/kolabboard/internal/testutil"
	"anoa.com/kolabboard/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	svc      Service
	owner    *entity.User
	member   *entity.User
	outsider *entity.User
	org      *entity.Organization
	board    *entity.Board
	list     *entity.List
	card     *entity.Card
	file     *entity.File
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{db: db, svc: NewService(repository.NewAccessRepository(db))}
	f.owner = testutil.CreateUser(t, db, entity.RoleStudent)
	f.member = testutil.CreateUser(t, db, entity.RoleFaculty)
	f.outsider = testutil.CreateUser(t, db, entity.RoleStudent)
	f.org = testutil.CreateOrganization(t, db, f.owner, f.member)
	f.board = testutil.CreateBoard(t, db, f.org, f.owner)
	f.list = testutil.CreateList(t, db, f.board, 0)
	f.card = testutil.CreateCard(t, db, f.board, f.list)
	f.file = testutil.CreateFile(t, db, f.card)
	return f
}

func TestPredicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	type predicate func(ctx context.Context, userID, id uuid.UUID) (bool, error)
	tests := []struct {
		name  string
		check predicate
		id    uuid.UUID
		user  uuid.UUID
		want  bool
	}{
		{"owner is member", f.svc.IsOrganizationMember, f.org.ID, f.owner.ID, true},
		{"member is member", f.svc.IsOrganizationMember, f.org.ID, f.member.ID, true},
		{"outsider is not member", f.svc.IsOrganizationMember, f.org.ID, f.outsider.ID, false},
		{"owner is owner", f.svc.IsOrganizationOwner, f.org.ID, f.owner.ID, true},
		{"member is not owner", f.svc.IsOrganizationOwner, f.org.ID, f.member.ID, false},
		{"missing org has no owner", f.svc.IsOrganizationOwner, uuid.New(), f.owner.ID, false},
		{"creator", f.svc.IsBoardCreator, f.board.ID, f.owner.ID, true},
		{"member is not creator", f.svc.IsBoardCreator, f.board.ID, f.member.ID, false},
		{"member reaches board", f.svc.HasAccessToBoard, f.board.ID, f.member.ID, true},
		{"outsider blocked from board", f.svc.HasAccessToBoard, f.board.ID, f.outsider.ID, false},
		{"missing board", f.svc.HasAccessToBoard, uuid.New(), f.owner.ID, false},
		{"member reaches list", f.svc.HasAccessToList, f.list.ID, f.member.ID, true},
		{"outsider blocked from list", f.svc.HasAccessToList, f.list.ID, f.outsider.ID, false},
		{"member reaches card", f.svc.HasAccessToCard, f.card.ID, f.member.ID, true},
		{"outsider blocked from card", f.svc.HasAccessToCard, f.card.ID, f.outsider.ID, false},
		{"missing card", f.svc.HasAccessToCard, uuid.New(), f.member.ID, false},
		{"member reaches file", f.svc.HasAccessToFile, f.file.ID, f.member.ID, true},
		{"outsider blocked from file", f.svc.HasAccessToFile, f.file.ID, f.outsider.ID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.check(ctx, tt.user, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSharesOrganization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.svc.SharesOrganization(ctx, f.owner.ID, f.member.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.SharesOrganization(ctx, f.owner.ID, f.outsider.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.svc.SharesOrganization(ctx, f.outsider.ID, f.outsider.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthorizeResolvesBeforeChecking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AuthorizeBoard(ctx, f.outsider.ID, uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "got %v", err)

	_, err = f.svc.AuthorizeBoard(ctx, f.outsider.ID, f.board.ID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)

	board, err := f.svc.AuthorizeBoard(ctx, f.member.ID, f.board.ID)
	require.NoError(t, err)
	assert.Equal(t, f.board.ID, board.ID)

	_, err = f.svc.AuthorizeBoardCreator(ctx, f.member.ID, f.board.ID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)

	_, err = f.svc.AuthorizeOrganizationOwner(ctx, f.member.ID, f.org.ID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)

	_, err = f.svc.AuthorizeOrganization(ctx, f.owner.ID, uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "got %v", err)

	_, err = f.svc.AuthorizeCard(ctx, f.outsider.ID, f.card.ID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)

	_, err = f.svc.AuthorizeList(ctx, f.member.ID, f.list.ID)
	assert.NoError(t, err)

	_, err = f.svc.AuthorizeFile(ctx, f.member.ID, uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "got %v", err)
}

func TestMembershipRemovalRevokesAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.db.Where("user_id = ? AND organization_id = ?", f.member.ID, f.org.ID).
		Delete(&entity.OrganizationMember{}).Error)

	ok, err := f.svc.HasAccessToCard(ctx, f.member.ID, f.card.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
