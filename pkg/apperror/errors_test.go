package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"invalid token", ErrInvalidToken, http.StatusUnauthorized},
		{"wrapped forbidden", fmt.Errorf("only the creator may edit: %w", ErrForbidden), http.StatusForbidden},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"conflict", fmt.Errorf("email taken: %w", ErrConflict), http.StatusConflict},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"invalid state", ErrInvalidState, http.StatusBadRequest},
		{"app error code wins", New(http.StatusTeapot, "short and stout", ErrNotFound), http.StatusTeapot},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatus(tt.err))
		})
	}
}

func TestFromDB(t *testing.T) {
	assert.Nil(t, FromDB(nil))
	assert.ErrorIs(t, FromDB(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, FromDB(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)), ErrConflict)
	assert.ErrorIs(t, FromDB(gorm.ErrForeignKeyViolated), ErrInvalidInput)

	other := errors.New("boom")
	assert.Equal(t, other, FromDB(other))
}

func TestAppErrorMessage(t *testing.T) {
	err := New(http.StatusBadRequest, "", ErrInvalidInput)
	assert.Equal(t, ErrInvalidInput.Error(), err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = New(http.StatusBadRequest, "title wajib diisi", ErrInvalidInput)
	assert.Equal(t, "title wajib diisi", err.Error())
}
