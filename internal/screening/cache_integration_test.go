//go:build integration

package screening

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"amlengine/pkg/testutil/containers"
)

type countingProvider struct {
	calls  int
	result Result
}

func (p *countingProvider) Screen(_ context.Context, _ Subject) (Result, error) {
	p.calls++
	return p.result, nil
}

type CachedProviderSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	ctx   context.Context
}

func TestCachedProviderSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CachedProviderSuite))
}

func (s *CachedProviderSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.ctx = context.Background()
}

func (s *CachedProviderSuite) SetupTest() {
	s.Require().NoError(s.redis.Client.FlushAll(s.ctx).Err())
}

func (s *CachedProviderSuite) TestDefinitiveResultIsCached() {
	details := "UN consolidated list"
	next := &countingProvider{result: Definitive(true, &details, time.Now().UTC())}
	p := NewCachedProvider(next, s.redis.Client, WithTTL(time.Minute))
	subject := testSubject()

	first, err := p.Screen(s.ctx, subject)
	s.Require().NoError(err)
	second, err := p.Screen(s.ctx, subject)
	s.Require().NoError(err)

	s.Equal(1, next.calls)
	s.True(second.Match)
	s.Require().NotNil(second.Details)
	s.Equal(details, *second.Details)
	s.False(first.Cached)
	s.True(second.Cached)
	s.True(first.ScreenedAt.Equal(second.ScreenedAt))

	ttl, err := s.redis.Client.TTL(s.ctx, screeningKeyPrefix+subject.ClientID.String()).Result()
	s.Require().NoError(err)
	s.Positive(ttl)
}

func (s *CachedProviderSuite) TestDegradedResultIsNotCached() {
	next := &countingProvider{result: degraded(time.Now())}
	p := NewCachedProvider(next, s.redis.Client)
	subject := testSubject()

	for range 3 {
		res, err := p.Screen(s.ctx, subject)
		s.Require().NoError(err)
		s.True(res.Degraded())
	}
	s.Equal(3, next.calls)
}
