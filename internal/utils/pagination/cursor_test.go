package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/pawmatch/internal/utils/pagination"
)

func TestDecodeEmptyIsFirstPage(t *testing.T) {
	c, err := pagination.Decode("")
	require.NoError(t, err)
	assert.True(t, c.IsZero())
}

func TestDecodeGarbage(t *testing.T) {
	_, err := pagination.Decode("%%%not-base64")
	assert.Error(t, err)
}

func TestAfterKeepsMillis(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 123_000_000, time.UTC)
	token, err := pagination.Encode(pagination.After("like-1", ts))
	require.NoError(t, err)

	c, err := pagination.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "like-1", c.ID)
	assert.True(t, ts.Equal(c.Time()))
}

func TestPage(t *testing.T) {
	rows := []string{"a", "b", "c"}
	key := func(s string) pagination.Cursor { return pagination.Cursor{ID: s, CreatedUnix: 1} }

	got, next := pagination.Page(rows, 2, key)
	assert.Equal(t, []string{"a", "b"}, got)
	require.NotNil(t, next)

	c, err := pagination.Decode(*next)
	require.NoError(t, err)
	assert.Equal(t, "b", c.ID)

	got, next = pagination.Page(rows, 3, key)
	assert.Len(t, got, 3)
	assert.Nil(t, next)
}
