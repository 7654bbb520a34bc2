package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOwnerKey(t *testing.T) {
	id := uuid.MustParse("5b1f0c3e-8a7d-4f5e-9c2b-1d3e4f5a6b7c")
	assert.Equal(t, "events:owner:5b1f0c3e-8a7d-4f5e-9c2b-1d3e4f5a6b7c", OwnerKey(id))
	assert.Equal(t, "events:owner:5b1f0c3e-8a7d-4f5e-9c2b-1d3e4f5a6b7c:gen", GenerationKey(id))
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cache, err := NewRedisCache(ctx, "redis://127.0.0.1:1/0", time.Minute)

	assert.Error(t, err)
	assert.Nil(t, cache)
}
