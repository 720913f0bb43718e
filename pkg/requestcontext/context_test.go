package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessorsFallBackWhenUnset(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))
	assert.Empty(t, ClientIP(ctx))
	assert.Empty(t, UserAgent(ctx))
	assert.WithinDuration(t, time.Now(), Now(ctx), time.Second)
}

func TestAccessorsReturnInjectedValues(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	ctx := WithRequestID(context.Background(), "req-42")
	ctx = WithClientMetadata(ctx, "10.0.0.7", "curl/8.4.0")
	ctx = WithTime(ctx, fixed)

	assert.Equal(t, "req-42", RequestID(ctx))
	assert.Equal(t, "10.0.0.7", ClientIP(ctx))
	assert.Equal(t, "curl/8.4.0", UserAgent(ctx))
	assert.Equal(t, fixed, Now(ctx))
}
