package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginsDefaultWhenUnset(t *testing.T) {
	check := originChecker(allowedOrigins(nil))

	tests := []struct {
		origin string
		want   bool
	}{
		{origin: "", want: true},
		{origin: defaultOrigin, want: true},
		{origin: "http://evil.test", want: false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/notification/ws", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		assert.Equal(t, tt.want, check(req), tt.origin)
	}

	assert.Equal(t, []string{"http://a.test"}, allowedOrigins([]string{"http://a.test"}))
}
