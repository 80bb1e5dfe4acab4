package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampPages(t *testing.T) {
	assert.Equal(t, 0, ClampPages(-5, 100))
	assert.Equal(t, 100, ClampPages(150, 100))
	assert.Equal(t, 42, ClampPages(42, 100))
	assert.Equal(t, 5000, ClampPages(5000, 0), "unknown total has no upper bound")
	assert.Equal(t, 0, ClampPages(-1, 0))
}

func TestAddPages(t *testing.T) {
	assert.Equal(t, 25, AddPages(10, 15, 100))
	assert.Equal(t, 300, AddPages(5, math.MaxInt, 300))
	assert.Equal(t, math.MaxInt, AddPages(5, math.MaxInt, 0), "unknown total saturates")
	assert.Equal(t, 0, AddPages(5, math.MinInt, 300))
	assert.Equal(t, 0, AddPages(10, -50, 0))
}

func TestPagesFromPercent(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		total   int
		want    int
	}{
		{name: "half", percent: 50, total: 300, want: 150},
		{name: "rounds", percent: 33.3, total: 100, want: 33},
		{name: "over 100 clamps", percent: 140, total: 200, want: 200},
		{name: "negative clamps", percent: -10, total: 200, want: 0},
		{name: "unknown total", percent: 80, total: 0, want: 0},
		{name: "nan", percent: math.NaN(), total: 100, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PagesFromPercent(tt.percent, tt.total))
		})
	}
}

func TestReadingNowList_Formats(t *testing.T) {
	var list ReadingNowList
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"a","title":"A"},{"id":"b","title":"B"}]`), &list))
	assert.False(t, list.Migrated)
	assert.Len(t, list.Books, 2)

	var single ReadingNowList
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","title":"A","pageCount":120}`), &single))
	assert.True(t, single.Migrated)
	require.Len(t, single.Books, 1)
	assert.Equal(t, 120, single.Books[0].PageCount)

	var null ReadingNowList
	require.NoError(t, json.Unmarshal([]byte(`null`), &null))
	assert.Empty(t, null.Books)

	var bad ReadingNowList
	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &bad))
}

func TestList_Valid(t *testing.T) {
	assert.True(t, ListReadingNow.Valid())
	assert.True(t, ListToRead.Valid())
	assert.True(t, ListFinished.Valid())
	assert.False(t, List("wishlist").Valid())
}
