package id

import (
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	t.Parallel()

	t.Run("has fixed length and layout", func(t *testing.T) {
		t.Parallel()

		at := time.UnixMilli(1700000000123)
		v := nextAt(at)

		require.Len(t, v, NextLength)
		assert.Equal(t, "001700000000123", v[:15])
		assert.Equal(t, "000", v[47:])

		_, err := uuid.Parse(v[15:47])
		require.NoError(t, err)
	})

	t.Run("timestamp prefix is numeric", func(t *testing.T) {
		t.Parallel()

		v := Next()
		ms, err := strconv.ParseInt(v[:15], 10, 64)
		require.NoError(t, err)
		assert.InDelta(t, time.Now().UnixMilli(), ms, float64(time.Minute.Milliseconds()))
	})

	t.Run("unique", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]struct{}, 1000)
		for range 1000 {
			v := Next()
			_, dup := seen[v]
			require.False(t, dup, "duplicate id %s", v)
			seen[v] = struct{}{}
		}
	})

	t.Run("sorts by creation time", func(t *testing.T) {
		t.Parallel()

		base := time.UnixMilli(1700000000000)
		ids := []string{
			nextAt(base.Add(2 * time.Millisecond)),
			nextAt(base),
			nextAt(base.Add(time.Millisecond)),
		}
		sort.Strings(ids)

		assert.Equal(t, "001700000000000", ids[0][:15])
		assert.Equal(t, "001700000000001", ids[1][:15])
		assert.Equal(t, "001700000000002", ids[2][:15])
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	v := New()
	_, err := uuid.Parse(v)
	require.NoError(t, err)
	assert.NotEqual(t, v, New())
}
