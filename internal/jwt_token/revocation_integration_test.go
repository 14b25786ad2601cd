//go:build integration

package jwttoken_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	jwttoken "amlengine/internal/jwt_token"
	"amlengine/pkg/testutil/containers"
)

type RevocationListSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	list  *jwttoken.RevocationList
}

func TestRevocationListSuite(t *testing.T) {
	suite.Run(t, new(RevocationListSuite))
}

func (s *RevocationListSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.list = jwttoken.NewRevocationList(s.redis.Client)
}

func (s *RevocationListSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RevocationListSuite) TestRevoke() {
	ctx := context.Background()

	revoked, err := s.list.IsTokenRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.False(revoked)

	s.Require().NoError(s.list.Revoke(ctx, "jti-1", time.Minute))

	revoked, err = s.list.IsTokenRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.True(revoked)

	revoked, err = s.list.IsTokenRevoked(ctx, "jti-2")
	s.Require().NoError(err)
	s.False(revoked)
}
