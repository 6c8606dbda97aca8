package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"anoa.com/kolabboard/internal/entity"
	accessRepo "anoa.com/kolabboard/internal/modules/access/repository"
	access "anoa.com/kolabboard/internal/modules/access/service"
	"anoa.com/kolabboard/internal/modules/notification/dto"
	notifRepo "anoa.com/kolabboard/internal/modules/notification/repository"
	userRepo "anoa.com/kolabboard/internal/modules/user/repository"
	"anoa.com/kolabboard/internal/testutil"
	"anoa.com/kolabboard/pkg/apperror"
	commonDto "anoa.com/kolabboard/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type published struct {
	channel string
	payload []byte
}

type fakePublisher struct {
	messages []published
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	f.messages = append(f.messages, published{channel: channel, payload: payload})
	return f.err
}

func newService(db *gorm.DB, pub Publisher) NotificationService {
	return NewNotificationService(
		notifRepo.NewNotificationRepository(db),
		userRepo.NewUserRepository(db),
		access.NewService(accessRepo.NewAccessRepository(db)),
		pub,
		zap.NewNop(),
	)
}

func TestNotifyPublishes(t *testing.T) {
	db := testutil.NewDB(t)
	pub := &fakePublisher{}
	svc := newService(db, pub)
	alice := testutil.CreateUser(t, db, entity.RoleStudent)

	require.NoError(t, svc.Notify(context.Background(), alice.ID, "<i>You</i> were invited"))

	require.Len(t, pub.messages, 1)
	assert.Equal(t, "user_notifications:"+alice.ID.String(), pub.messages[0].channel)

	var n entity.Notification
	require.NoError(t, json.Unmarshal(pub.messages[0].payload, &n))
	assert.Equal(t, "You were invited", n.Content)
	assert.False(t, n.Read)
}

func TestPublishFailureIsNotFatal(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db, &fakePublisher{err: errors.New("redis down")})
	alice := testutil.CreateUser(t, db, entity.RoleStudent)

	require.NoError(t, svc.Notify(context.Background(), alice.ID, "hello"))

	count, err := svc.UnreadCount(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCreateRequiresSharedOrganization(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db, nil)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, entity.RoleStudent)
	bob := testutil.CreateUser(t, db, entity.RoleStudent)
	stranger := testutil.CreateUser(t, db, entity.RoleStudent)
	testutil.CreateOrganization(t, db, alice, bob)

	n, err := svc.Create(ctx, alice.ID, dto.CreateNotificationRequest{UserID: bob.ID, Content: "standup in 5"})
	require.NoError(t, err)
	assert.Equal(t, bob.ID, n.UserID)

	_, err = svc.Create(ctx, alice.ID, dto.CreateNotificationRequest{UserID: stranger.ID, Content: "hi"})
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)

	_, err = svc.Create(ctx, alice.ID, dto.CreateNotificationRequest{UserID: uuid.New(), Content: "hi"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "got %v", err)

	_, err = svc.Create(ctx, alice.ID, dto.CreateNotificationRequest{UserID: bob.ID, Content: "<script>x</script>"})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput), "got %v", err)
}

func TestReadState(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db, nil)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, entity.RoleStudent)
	bob := testutil.CreateUser(t, db, entity.RoleStudent)
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Notify(ctx, alice.ID, "ping"))
	}

	list, err := svc.GetNotifications(ctx, alice.ID, commonDto.PageQuery{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	assert.EqualValues(t, 3, list.Meta.TotalItems)
	assert.Equal(t, 2, list.Meta.TotalPages)

	first := list.Notifications[0].ID
	assert.True(t, errors.Is(svc.MarkAsRead(ctx, bob.ID, first), apperror.ErrForbidden))
	assert.True(t, errors.Is(svc.MarkAsRead(ctx, alice.ID, uuid.New()), apperror.ErrNotFound))
	require.NoError(t, svc.MarkAsRead(ctx, alice.ID, first))
	require.NoError(t, svc.MarkAsRead(ctx, alice.ID, first))

	count, err := svc.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	updated, err := svc.MarkAllAsRead(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)

	count, err = svc.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
