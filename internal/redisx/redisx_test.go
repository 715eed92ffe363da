package redisx

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	assert := require.New(t)
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	assert.NoError(c.Ping(ctx))

	_, found, err := c.Get(ctx, "missing")
	assert.NoError(err)
	assert.False(found)

	assert.NoError(c.Set(ctx, "k", "v", 0))
	val, found, err := c.Get(ctx, "k")
	assert.NoError(err)
	assert.True(found)
	assert.Equal("v", val)

	assert.NoError(c.Del(ctx, "k"))
	_, found, _ = c.Get(ctx, "k")
	assert.False(found)
}
