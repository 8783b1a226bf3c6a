package domain

import (
	"testing"

	"github.com/sosyal-lab/backend/internal/domain/gamification"
	"github.com/sosyal-lab/backend/internal/domain/notification"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/testutil"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestFollowerDomain() *followerDomain {
	fanout := notification.NewFanout(
		repository.NewNotificationRepository(), &testutil.MockPublisher{})
	engine := gamification.NewEngine(
		repository.NewUserRepository(),
		repository.NewPostRepository(),
		repository.NewFollowerRepository(),
		repository.NewAchievementRepository(),
		fanout,
		&testutil.MockRedisClient{},
	)

	return NewFollowerDomain(
		repository.NewUserRepository(),
		repository.NewFollowerRepository(),
		engine,
		fanout,
	)
}

func Test_followerDomain_Follow(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertUsers(ctx)

	domain := newTestFollowerDomain()
	_, err := domain.Follow(ctx, &model.FollowRequest{Handle: testutil.User2.Handle})
	require.NoError(t, err)

	followerRepo := repository.NewFollowerRepository()
	count, err := followerRepo.CountFollowers(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	// The followed user got a notification.
	notificationRepo := repository.NewNotificationRepository()
	unread, err := notificationRepo.CountUnread(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)
}

func Test_followerDomain_Follow_Twice(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertUsers(ctx)

	domain := newTestFollowerDomain()
	_, err := domain.Follow(ctx, &model.FollowRequest{Handle: testutil.User2.Handle})
	require.NoError(t, err)

	_, err = domain.Follow(ctx, &model.FollowRequest{Handle: testutil.User2.Handle})
	require.NoError(t, err)

	followerRepo := repository.NewFollowerRepository()
	count, err := followerRepo.CountFollowers(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	// The second follow is a no-op and does not notify again.
	notificationRepo := repository.NewNotificationRepository()
	unread, err := notificationRepo.CountUnread(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)
}

func Test_followerDomain_Follow_Self(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertUsers(ctx)

	domain := newTestFollowerDomain()
	_, err := domain.Follow(ctx, &model.FollowRequest{Handle: testutil.User1.Handle})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_followerDomain_Follow_NotFoundUser(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertUsers(ctx)

	domain := newTestFollowerDomain()
	_, err := domain.Follow(ctx, &model.FollowRequest{Handle: "no_such_user"})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_followerDomain_Unfollow(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertUsers(ctx)

	domain := newTestFollowerDomain()
	_, err := domain.Follow(ctx, &model.FollowRequest{Handle: testutil.User2.Handle})
	require.NoError(t, err)

	_, err = domain.Unfollow(ctx, &model.UnfollowRequest{Handle: testutil.User2.Handle})
	require.NoError(t, err)

	followerRepo := repository.NewFollowerRepository()
	count, err := followerRepo.CountFollowers(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	// Unfollowing again is harmless.
	_, err = domain.Unfollow(ctx, &model.UnfollowRequest{Handle: testutil.User2.Handle})
	require.NoError(t, err)
}

func Test_followerDomain_GetFollowers(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	domain := newTestFollowerDomain()

	followCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err := domain.Follow(followCtx, &model.FollowRequest{Handle: testutil.User2.Handle})
	require.NoError(t, err)

	followCtx = xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	_, err = domain.Follow(followCtx, &model.FollowRequest{Handle: testutil.User2.Handle})
	require.NoError(t, err)

	resp, err := domain.GetFollowers(ctx, &model.GetFollowersRequest{
		Handle: testutil.User2.Handle,
	})
	require.NoError(t, err)
	require.Len(t, resp.Followers, 2)

	following, err := domain.GetFollowing(ctx, &model.GetFollowingRequest{
		Handle: testutil.User1.Handle,
	})
	require.NoError(t, err)
	require.Len(t, following.Following, 1)
	require.Equal(t, testutil.User2.ID, following.Following[0].ID)
}
