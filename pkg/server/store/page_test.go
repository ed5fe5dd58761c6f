package store

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, Unpaged().Offset())
	assert.False(t, Unpaged().Paged())
	assert.Equal(t, 40, PageRequest{Page: 2, Size: 20}.Offset())
	assert.Equal(t, 0, PageRequest{Page: -1, Size: 20}.Offset())
	assert.Equal(t, math.MaxInt, PageRequest{Page: math.MaxInt / 2, Size: 4}.Offset())
	assert.Equal(t, math.MaxInt, PageRequest{Page: math.MaxInt, Size: 1}.Offset())
}

func TestPageTotalPages(t *testing.T) {
	assert.Equal(t, 3, Page[int]{Total: 41, Size: 20}.TotalPages())
	assert.Equal(t, 2, Page[int]{Total: 40, Size: 20}.TotalPages())
	assert.Equal(t, 0, Page[int]{Total: 0, Size: 20}.TotalPages())
	assert.Equal(t, 1, Page[int]{Total: 5}.TotalPages())
}

func TestMapPage(t *testing.T) {
	p := NewPage([]int{1, 2}, 12, PageRequest{Page: 1, Size: 2})
	out := MapPage(p, strconv.Itoa)
	assert.Equal(t, []string{"1", "2"}, out.Content)
	assert.Equal(t, int64(12), out.Total)
	assert.Equal(t, 1, out.Number)
	assert.Equal(t, 2, out.Size)
}

func TestNewPageNeverNil(t *testing.T) {
	p := NewPage[int](nil, 0, Unpaged())
	assert.NotNil(t, p.Content)
}
