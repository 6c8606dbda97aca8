package token

import (
	"testing"
	"time"

	"anoa.com/kolabboard/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("secret", 0)
	id := uuid.New()

	signed, expiresAt, err := svc.Issue(Principal{ID: id, Email: "alice@x.com", Role: "STUDENT"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTTL), expiresAt, time.Minute)

	p, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, "alice@x.com", p.Email)
	assert.Equal(t, "STUDENT", p.Role)
}

func TestIssueEncodesLowerCaseRole(t *testing.T) {
	svc := NewService("secret", time.Hour)

	signed, _, err := svc.Issue(Principal{ID: uuid.New(), Email: "a@x.com", Role: "FACULTY"})
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(signed, claims)
	require.NoError(t, err)
	assert.Equal(t, "faculty", claims.Role)
}

func TestVerifyRejects(t *testing.T) {
	svc := NewService("secret", time.Hour)
	signed, _, err := svc.Issue(Principal{ID: uuid.New(), Email: "a@x.com", Role: "student"})
	require.NoError(t, err)

	_, err = svc.Verify("")
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	_, err = svc.Verify("not-a-jwt")
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	_, err = NewService("other-secret", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	issuer := &service{secret: []byte("secret"), ttl: time.Hour, now: func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	}}
	signed, _, err := issuer.Issue(Principal{ID: uuid.New(), Email: "a@x.com", Role: "student"})
	require.NoError(t, err)

	_, err = NewService("secret", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}
