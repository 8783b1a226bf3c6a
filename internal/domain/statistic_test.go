package domain

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestStatisticDomain(redisClient *testutil.MockRedisClient) *statisticDomain {
	return NewStatisticDomain(
		repository.NewUserRepository(),
		repository.NewPostRepository(),
		repository.NewCommentRepository(),
		repository.NewFollowerRepository(),
		repository.NewChatRepository(),
		redisClient,
	)
}

func Test_statisticDomain_GetLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	domain := newTestStatisticDomain(&testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			return true, nil
		},
		ZRevRangeWithScoresFunc: func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
			return []redis.Z{
				{Member: testutil.User2.ID, Score: 120},
				{Member: testutil.User1.ID, Score: 80},
			}, nil
		},
	})

	resp, err := domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Leaderboard, 2)

	require.Equal(t, testutil.User2.ID, resp.Leaderboard[0].User.ID)
	require.Equal(t, int64(120), resp.Leaderboard[0].Points)
	require.Equal(t, 1, resp.Leaderboard[0].Rank)

	require.Equal(t, testutil.User1.ID, resp.Leaderboard[1].User.ID)
	require.Equal(t, 2, resp.Leaderboard[1].Rank)
}

func Test_statisticDomain_GetLeaderboard_RebuildFromDB(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	err := repository.NewUserRepository().IncreasePoints(ctx, testutil.User1.ID, 42)
	require.NoError(t, err)

	added := map[string]float64{}
	domain := newTestStatisticDomain(&testutil.MockRedisClient{
		ZAddFunc: func(ctx context.Context, key string, z redis.Z) error {
			added[z.Member.(string)] = z.Score
			return nil
		},
		ZRevRangeWithScoresFunc: func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
			return []redis.Z{{Member: testutil.User1.ID, Score: 42}}, nil
		},
	})

	resp, err := domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Leaderboard, 1)

	// Only users holding points are loaded into the rebuilt sorted set.
	require.Equal(t, map[string]float64{testutil.User1.ID: 42}, added)
}

func Test_statisticDomain_GetSiteStats(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertFixture(ctx)

	domain := newTestStatisticDomain(&testutil.MockRedisClient{
		SCardFunc: func(ctx context.Context, key string) (uint64, error) {
			return 2, nil
		},
	})

	resp, err := domain.GetSiteStats(ctx, &model.GetSiteStatsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(3), resp.TotalUsers)
	require.Equal(t, int64(1), resp.TotalPosts)
	require.Equal(t, int64(2), resp.OnlineUsers)
}

func Test_statisticDomain_AdminStats(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertFixture(ctx)

	domain := newTestStatisticDomain(&testutil.MockRedisClient{})
	resp, err := domain.AdminStats(ctx, &model.AdminStatsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(3), resp.TotalUsers)
	require.Equal(t, int64(1), resp.TotalPosts)
	require.Equal(t, int64(0), resp.TotalComments)
	require.Equal(t, int64(0), resp.TotalMessages)
}
