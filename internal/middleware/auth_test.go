package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/kolabboard/internal/entity"
	"anoa.com/kolabboard/pkg/response"
	"anoa.com/kolabboard/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T, tokens token.Service, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := NewAuthMiddleware(tokens)
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop(), false), Recovery(zap.NewNop()))

	handlers := append([]gin.HandlerFunc{auth.RequireAuth()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		p, err := response.GetPrincipal(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"id": p.ID.String(), "role": p.Role})
	})
	r.GET("/me", handlers...)
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestRequireAuth(t *testing.T) {
	tokens := token.NewService("secret", time.Hour)
	id := uuid.New()
	tok, _, err := tokens.Issue(token.Principal{ID: id, Email: "a@b.c", Role: "STUDENT"})
	require.NoError(t, err)

	r := newRouter(t, tokens)

	tests := []struct {
		name   string
		header string
		query  string
		status int
	}{
		{name: "bearer", header: "Bearer " + tok, status: http.StatusOK},
		{name: "lower-case scheme", header: "bearer " + tok, status: http.StatusOK},
		{name: "query fallback", query: "?token=" + tok, status: http.StatusOK},
		{name: "missing", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + tok, status: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not-a-jwt", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), id.String())
			}
		})
	}
}

func TestRequireAuthRejectsForeignSignature(t *testing.T) {
	other := token.NewService("other-secret", time.Hour)
	tok, _, err := other.Issue(token.Principal{ID: uuid.New(), Role: "STUDENT"})
	require.NoError(t, err)

	r := newRouter(t, token.NewService("secret", time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	tokens := token.NewService("secret", time.Hour)
	auth := NewAuthMiddleware(tokens)
	r := newRouter(t, tokens, auth.RequireRole(entity.RoleStudent))

	student, _, err := tokens.Issue(token.Principal{ID: uuid.New(), Role: "STUDENT"})
	require.NoError(t, err)
	faculty, _, err := tokens.Issue(token.Principal{ID: uuid.New(), Role: "FACULTY"})
	require.NoError(t, err)

	for tok, want := range map[string]int{student: http.StatusOK, faculty: http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code)
	}
}

func TestRecovery(t *testing.T) {
	r := newRouter(t, token.NewService("secret", time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}
