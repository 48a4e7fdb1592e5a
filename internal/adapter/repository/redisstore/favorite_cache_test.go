package redisstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/srgjo27/flight_booking/internal/adapter/repository/redisstore"
	"github.com/srgjo27/flight_booking/internal/core/ports/mocks"
)

func TestFavoriteCache_Hit(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	next := mocks.NewFavoriteRepository(t)
	cache := redisstore.NewFavoriteCache(db, next, time.Hour, zap.NewNop())

	mockRedis.ExpectGet("favorites:device-1").SetVal("[4,2]")

	ids, err := cache.LoadFavorites(context.Background(), "device-1")

	assert.NoError(t, err)
	assert.Equal(t, []int64{4, 2}, ids)
	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestFavoriteCache_MissLoadsAndPopulates(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	next := mocks.NewFavoriteRepository(t)
	cache := redisstore.NewFavoriteCache(db, next, time.Hour, zap.NewNop())
	ctx := context.Background()

	mockRedis.ExpectGet("favorites:device-1").RedisNil()
	next.On("LoadFavorites", ctx, "device-1").Return([]int64{9}, nil)
	mockRedis.ExpectSet("favorites:device-1", []byte("[9]"), time.Hour).SetVal("OK")

	ids, err := cache.LoadFavorites(ctx, "device-1")

	assert.NoError(t, err)
	assert.Equal(t, []int64{9}, ids)
	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestFavoriteCache_RedisDownFallsBack(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	next := mocks.NewFavoriteRepository(t)
	cache := redisstore.NewFavoriteCache(db, next, time.Hour, zap.NewNop())
	ctx := context.Background()

	mockRedis.ExpectGet("favorites:device-1").SetErr(errors.New("connection refused"))
	next.On("LoadFavorites", ctx, "device-1").Return([]int64{1}, nil)
	mockRedis.ExpectSet("favorites:device-1", []byte("[1]"), time.Hour).SetErr(errors.New("connection refused"))

	ids, err := cache.LoadFavorites(ctx, "device-1")

	assert.NoError(t, err)
	assert.Equal(t, []int64{1}, ids)
}

func TestFavoriteCache_SaveWritesThroughAndInvalidates(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	next := mocks.NewFavoriteRepository(t)
	cache := redisstore.NewFavoriteCache(db, next, time.Hour, zap.NewNop())
	ctx := context.Background()

	next.On("SaveFavorites", ctx, "device-1", []int64{3, 5}).Return(nil)
	mockRedis.ExpectDel("favorites:device-1").SetVal(1)

	err := cache.SaveFavorites(ctx, "device-1", []int64{3, 5})

	assert.NoError(t, err)
	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestFavoriteCache_SaveFailureSkipsInvalidation(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	next := mocks.NewFavoriteRepository(t)
	cache := redisstore.NewFavoriteCache(db, next, time.Hour, zap.NewNop())
	ctx := context.Background()

	next.On("SaveFavorites", ctx, "device-1", []int64{3}).Return(errors.New("db down"))

	err := cache.SaveFavorites(ctx, "device-1", []int64{3})

	assert.EqualError(t, err, "db down")
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestFavoriteCache_RedisOnly(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := redisstore.NewFavoriteCache(db, nil, time.Hour, zap.NewNop())
	ctx := context.Background()

	mockRedis.ExpectSet("favorites:device-1", []byte("[8,6]"), 0).SetVal("OK")
	mockRedis.ExpectGet("favorites:device-2").RedisNil()

	assert.NoError(t, cache.SaveFavorites(ctx, "device-1", []int64{8, 6}))

	ids, err := cache.LoadFavorites(ctx, "device-2")
	assert.NoError(t, err)
	assert.Empty(t, ids)

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
