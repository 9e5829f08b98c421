package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))

	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestID(ctx))
}

func TestNow_FallbackToRealTime(t *testing.T) {
	before := time.Now()
	result := Now(context.Background())
	after := time.Now()

	assert.False(t, result.Before(before))
	assert.False(t, result.After(after))
}

func TestWithTime_OverridesExistingTime(t *testing.T) {
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	ctx := WithTime(context.Background(), first)
	assert.Equal(t, first, Now(ctx))

	ctx = WithTime(ctx, second)
	assert.Equal(t, second, Now(ctx))
}

func TestClientAgent(t *testing.T) {
	assert.Empty(t, ClientAgent(context.Background()))
	assert.Equal(t, "Firefox 120.0", ClientAgent(WithClientAgent(context.Background(), "Firefox 120.0")))
}

func TestWalletAddress(t *testing.T) {
	assert.Empty(t, WalletAddress(context.Background()))

	ctx := WithWalletAddress(context.Background(), "0x742d35cc6bf4532c4c2c8db8e64a1b13c4a2b19f")
	assert.Equal(t, "0x742d35cc6bf4532c4c2c8db8e64a1b13c4a2b19f", WalletAddress(ctx))
}
