package gamification

import (
	"context"
	"testing"

	"github.com/sosyal-lab/backend/internal/domain/notification"
	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestEngine(redisClient *testutil.MockRedisClient) *Engine {
	fanout := notification.NewFanout(
		repository.NewNotificationRepository(), &testutil.MockPublisher{})

	return NewEngine(
		repository.NewUserRepository(),
		repository.NewPostRepository(),
		repository.NewFollowerRepository(),
		repository.NewAchievementRepository(),
		fanout,
		redisClient,
	)
}

func Test_Engine_AddPoints_LevelUp(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	engine := newTestEngine(&testutil.MockRedisClient{})
	userRepo := repository.NewUserRepository()

	require.NoError(t, engine.AddPoints(ctx, testutil.User1.ID, 95))

	user, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, user.Level)
	require.Equal(t, 95, user.Experience)

	// Crossing the level-1 threshold of 100 resets experience to the
	// overflow and notifies the user.
	require.NoError(t, engine.AddPoints(ctx, testutil.User1.ID, 10))

	user, err = userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, 2, user.Level)
	require.Equal(t, 5, user.Experience)
	require.Equal(t, int64(105), user.Points)

	unread, err := repository.NewNotificationRepository().CountUnread(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)
}

func Test_Engine_AddPoints_UpdatesLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	increments := map[string]int64{}
	engine := newTestEngine(&testutil.MockRedisClient{
		ZIncrByFunc: func(ctx context.Context, key string, incr int64, member string) error {
			increments[member] += incr
			return nil
		},
	})

	require.NoError(t, engine.AddPoints(ctx, testutil.User1.ID, 10))
	require.NoError(t, engine.AddPoints(ctx, testutil.User1.ID, 5))

	require.Equal(t, int64(15), increments[testutil.User1.ID])
}

func Test_Engine_CheckAchievements(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertFixture(ctx)

	engine := newTestEngine(&testutil.MockRedisClient{})
	achievementRepo := repository.NewAchievementRepository()

	// User1 owns one post, so the first-post achievement unlocks and its
	// reward points are granted.
	require.NoError(t, engine.CheckAchievements(ctx, testutil.User1.ID))

	unlocked, err := achievementRepo.GetByUser(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Len(t, unlocked, 1)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(10), user.Points)

	// Checking again does not unlock or reward twice.
	require.NoError(t, engine.CheckAchievements(ctx, testutil.User1.ID))

	unlocked, err = achievementRepo.GetByUser(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Len(t, unlocked, 1)

	user, err = repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(10), user.Points)
}

func Test_Engine_CheckAchievements_Followers(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	followerRepo := repository.NewFollowerRepository()
	for _, followerID := range []string{"f1", "f2", "f3", "f4", "f5"} {
		err := followerRepo.Create(ctx, &entity.Follower{
			FollowerID: followerID,
			FollowedID: testutil.User2.ID,
		})
		require.NoError(t, err)
	}

	engine := newTestEngine(&testutil.MockRedisClient{})
	require.NoError(t, engine.CheckAchievements(ctx, testutil.User2.ID))

	unlocked, err := repository.NewAchievementRepository().GetByUser(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
}

func Test_LevelThreshold(t *testing.T) {
	require.Equal(t, 100, LevelThreshold(1))
	require.Equal(t, 500, LevelThreshold(5))
}
