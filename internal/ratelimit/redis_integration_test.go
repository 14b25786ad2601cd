//go:build integration

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"amlengine/internal/ratelimit"
	"amlengine/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *ratelimit.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = ratelimit.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestWindow() {
	ctx := context.Background()

	for i := range 3 {
		res, err := s.store.Allow(ctx, "ratelimit:screening:u1", 3, time.Minute)
		s.Require().NoError(err)
		s.True(res.Allowed)
		s.Equal(2-i, res.Remaining)
	}

	res, err := s.store.Allow(ctx, "ratelimit:screening:u1", 3, time.Minute)
	s.Require().NoError(err)
	s.False(res.Allowed)
	s.WithinDuration(time.Now().Add(time.Minute), res.ResetAt, 5*time.Second)

	res, err = s.store.Allow(ctx, "ratelimit:screening:u2", 3, time.Minute)
	s.Require().NoError(err)
	s.True(res.Allowed)

	ttl, err := s.redis.Client.PTTL(ctx, "ratelimit:screening:u1").Result()
	s.Require().NoError(err)
	s.Positive(ttl)
}
