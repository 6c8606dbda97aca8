// Package testutil builds an in-memory database with the production schema
// and a handful of fixtures shared by the module tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"anoa.com/kolabboard/internal/bootstrap"
	"anoa.com/kolabboard/internal/entity"
	"anoa.com/kolabboard/pkg/database"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const Password = "password123"

// NewDB returns a fresh migrated sqlite database. The pool is pinned to one
// connection because every ":memory:" connection is its own database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	opts := database.Options(false)
	opts.Logger = gormlogger.Default.LogMode(gormlogger.Silent)

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), opts)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, bootstrap.Migrate(db))
	return db
}

var passwordHash string

// PasswordHash is computed once at MinCost so fixtures stay fast.
func PasswordHash(t testing.TB) string {
	t.Helper()
	if passwordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
		require.NoError(t, err)
		passwordHash = string(hash)
	}
	return passwordHash
}

func CreateUser(t testing.TB, db *gorm.DB, role entity.Role) *entity.User {
	t.Helper()
	handle := "u" + uuid.NewString()[:8]
	u := &entity.User{
		Username:     handle,
		Email:        handle + "@kolabboard.test",
		PasswordHash: PasswordHash(t),
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateOrganization creates an organization owned by owner with owner and
// members enrolled.
func CreateOrganization(t testing.TB, db *gorm.DB, owner *entity.User, members ...*entity.User) *entity.Organization {
	t.Helper()
	org := &entity.Organization{Name: "Org " + uuid.NewString()[:6], OwnerID: owner.ID}
	require.NoError(t, db.Create(org).Error)
	for _, u := range append([]*entity.User{owner}, members...) {
		require.NoError(t, db.Create(&entity.OrganizationMember{UserID: u.ID, OrganizationID: org.ID}).Error)
	}
	return org
}

func CreateBoard(t testing.TB, db *gorm.DB, org *entity.Organization, creator *entity.User) *entity.Board {
	t.Helper()
	b := &entity.Board{Title: "Board", OrganizationID: org.ID, CreatorID: creator.ID}
	require.NoError(t, db.Create(b).Error)
	return b
}

func CreateList(t testing.TB, db *gorm.DB, board *entity.Board, position int) *entity.List {
	t.Helper()
	l := &entity.List{Title: fmt.Sprintf("List %d", position), Position: position, BoardID: board.ID}
	require.NoError(t, db.Create(l).Error)
	return l
}

func CreateCard(t testing.TB, db *gorm.DB, board *entity.Board, list *entity.List) *entity.Card {
	t.Helper()
	c := &entity.Card{Title: "Card", BoardID: board.ID}
	if list != nil {
		c.ListID = &list.ID
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func CreateFile(t testing.TB, db *gorm.DB, card *entity.Card) *entity.File {
	t.Helper()
	f := &entity.File{URL: "https://files.test/a.pdf", Name: "a.pdf", Type: "application/pdf", CardID: card.ID}
	require.NoError(t, db.Create(f).Error)
	return f
}

// Ptr is a small helper for optional DTO fields.
func Ptr[T any](v T) *T {
	return &v
}

// Date returns midnight UTC of the given day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
