package listings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayupanchal18/Renters-sub007/internal/common/logger"
)

// Command-level assertions on the cache protocol, complementing the
// behavioural miniredis tests.

func TestCachedSource_WriteFailureStillServesResults(t *testing.T) {
	client, mock := redismock.NewClientMock()
	inner := &countingSource{items: []Listing{{ID: "l1"}}}
	src := NewCachedSource(inner, client, time.Minute, logger.NewNoOpLogger())

	encoded, err := json.Marshal(inner.items)
	require.NoError(t, err)

	mock.ExpectGet(candidatesCacheKey).RedisNil()
	mock.ExpectSet(candidatesCacheKey, encoded, time.Minute).SetErr(errors.New("redis write failed"))

	got, err := src.Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedSource_ReadErrorFallsThroughToSource(t *testing.T) {
	client, mock := redismock.NewClientMock()
	inner := &countingSource{items: []Listing{{ID: "l1"}}}
	src := NewCachedSource(inner, client, time.Minute, logger.NewNoOpLogger())

	encoded, err := json.Marshal(inner.items)
	require.NoError(t, err)

	mock.ExpectGet(candidatesCacheKey).SetErr(redis.ErrClosed)
	mock.ExpectSet(candidatesCacheKey, encoded, time.Minute).SetVal("OK")

	got, err := src.Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
