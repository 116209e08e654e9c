package ratelimit_test

import (
	"context"
	"testing"

	"github.com/SscSPs/fleetops_finance/internal/platform/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MemoryStoreEnforcesRate(t *testing.T) {
	l, err := ratelimit.New("2-M", "")
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		lctx, err := l.Get(ctx, "user:1")
		require.NoError(t, err)
		assert.False(t, lctx.Reached)
	}
	lctx, err := l.Get(ctx, "user:1")
	require.NoError(t, err)
	assert.True(t, lctx.Reached)

	other, err := l.Get(ctx, "user:2")
	require.NoError(t, err)
	assert.False(t, other.Reached)
}

func TestNew_InvalidInput(t *testing.T) {
	_, err := ratelimit.New("lots", "")
	assert.Error(t, err)

	_, err = ratelimit.New("10-M", "not a url")
	assert.Error(t, err)
}
