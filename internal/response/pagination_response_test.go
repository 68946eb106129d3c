package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, DefaultPageSize},
		{-3, 5, 1, 5},
		{2, 500, 2, MaxPageSize},
		{4, 25, 4, 25},
	}
	for _, tt := range tests {
		page, size := NormalizePage(tt.page, tt.size)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantSize, size)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 10, 25)
	assert.EqualValues(t, 3, p.TotalPages)
	assert.Equal(t, 11, p.From)
	assert.Equal(t, 20, p.To)
	assert.True(t, p.HasMore)

	last := NewPagination(3, 10, 5, 25)
	assert.Equal(t, 21, last.From)
	assert.Equal(t, 25, last.To)
	assert.False(t, last.HasMore)

	empty := NewPagination(1, 10, 0, 0)
	assert.EqualValues(t, 0, empty.TotalPages)
	assert.Equal(t, 0, empty.From)
	assert.False(t, empty.HasMore)
}
