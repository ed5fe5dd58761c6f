package memory

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/mirror"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
)

type doc struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

var _ mirror.Index[doc] = (*Index[doc])(nil)

func seeded(t *testing.T) *Index[doc] {
	t.Helper()
	ix := NewIndex[doc]()
	for _, d := range []doc{
		{3, "Acme North", "Oslo"},
		{1, "Acme South", "Lima"},
		{2, "Globex", "Oslo"},
	} {
		require.NoError(t, ix.Save(context.Background(), d.ID, d))
	}
	return ix
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	ix := seeded(t)

	tests := []struct {
		query string
		want  []int64
	}{
		{"", []int64{1, 2, 3}},
		{"*", []int64{1, 2, 3}},
		{"acme", []int64{1, 3}},
		{"ACME oslo", []int64{3}},
		{"oslo", []int64{2, 3}},
		{"initech", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			page, err := ix.Search(ctx, tt.query, store.Unpaged())
			require.NoError(t, err)
			got := make([]int64, 0, len(page.Content))
			for _, d := range page.Content {
				got = append(got, d.ID)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, int64(len(tt.want)), page.Total)
		})
	}
}

func TestSearchPaged(t *testing.T) {
	page, err := seeded(t).Search(context.Background(), "", store.PageRequest{Page: 1, Size: 2})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(3), page.Content[0].ID)
	assert.Equal(t, int64(3), page.Total)

	page, err = seeded(t).Search(context.Background(), "", store.PageRequest{Page: math.MaxInt / 2, Size: 4})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, int64(3), page.Total)
}

func TestSaveReplacesDocument(t *testing.T) {
	ctx := context.Background()
	ix := seeded(t)

	require.NoError(t, ix.Save(ctx, 2, doc{2, "Initech", "Bergen"}))

	page, err := ix.Search(ctx, "globex", store.Unpaged())
	require.NoError(t, err)
	assert.Empty(t, page.Content)

	d, err := ix.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Initech", d.Name)
}

func TestDeleteAndIDs(t *testing.T) {
	ctx := context.Background()
	ix := seeded(t)

	require.NoError(t, ix.Delete(ctx, 1))
	require.NoError(t, ix.Delete(ctx, 1))

	exists, err := ix.Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = ix.FindByID(ctx, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	ids, err := ix.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, ids)
}
