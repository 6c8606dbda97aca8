package search

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBoardFilter(t *testing.T) {
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	b := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	assert.Equal(t,
		`board_id IN ["11111111-1111-1111-1111-111111111111", "22222222-2222-2222-2222-222222222222"]`,
		BoardFilter([]uuid.UUID{a, b}),
	)
}
