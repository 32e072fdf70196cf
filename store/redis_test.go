package store

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedis(db, "invers:")
	ctx := context.Background()

	t.Run("hit returns value", func(t *testing.T) {
		mock.ExpectGet("invers:snap").SetVal(`{"version":5}`)
		got, err := r.Get(ctx, "snap")
		require.NoError(t, err)
		assert.Equal(t, `{"version":5}`, string(got))
	})

	t.Run("miss returns ErrNotFound", func(t *testing.T) {
		mock.ExpectGet("invers:snap").RedisNil()
		_, err := r.Get(ctx, "snap")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("server error is wrapped", func(t *testing.T) {
		mock.ExpectGet("invers:snap").SetErr(errors.New("connection refused"))
		_, err := r.Get(ctx, "snap")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedis(db, "invers:")
	ctx := context.Background()
	value := []byte(`{"version":5}`)

	mock.ExpectSet("invers:snap", value, 0).SetVal("OK")
	require.NoError(t, r.Set(ctx, "snap", value))

	mock.ExpectSet("invers:snap", value, 0).SetErr(errors.New("OOM command not allowed when used memory > 'maxmemory'"))
	assert.ErrorIs(t, r.Set(ctx, "snap", value), ErrQuotaExceeded)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_BreakerOpens(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedis(db, "")
	ctx := context.Background()
	value := []byte("x")

	for i := 0; i < 3; i++ {
		mock.ExpectSet("snap", value, 0).SetErr(errors.New("connection refused"))
		require.Error(t, r.Set(ctx, "snap", value))
	}
	// the breaker is open: the client is not called again.
	err := r.Set(ctx, "snap", value)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.NoError(t, mock.ExpectationsWereMet())
}
