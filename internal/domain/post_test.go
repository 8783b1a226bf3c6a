package domain

import (
	"strings"
	"testing"

	"github.com/sosyal-lab/backend/internal/domain/gamification"
	"github.com/sosyal-lab/backend/internal/domain/notification"
	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/testutil"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestPostDomain() *postDomain {
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

	return NewPostDomain(
		repository.NewPostRepository(),
		repository.NewPostLikeRepository(),
		repository.NewCommentRepository(),
		repository.NewUserRepository(),
		repository.NewFollowerRepository(),
		engine,
		fanout,
		&testutil.MockSearchCaller{},
		&testutil.MockRedisClient{},
	)
}

func Test_ExtractHashtags(t *testing.T) {
	require.Equal(t,
		[]string{"world", "Test123"},
		ExtractHashtags("hello #world and #Test123"))

	// Case is preserved, so differently-cased tags stay distinct.
	require.Equal(t,
		[]string{"selam", "kahve", "SELAM"},
		ExtractHashtags("Günaydın #selam herkese #kahve zamanı #SELAM"))

	require.Equal(t, []string{"kahve"}, ExtractHashtags("#kahve içtik, yine #kahve"))
	require.Equal(t, []string{}, ExtractHashtags("no tags here"))
}

func Test_postDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertUsers(ctx)

	domain := newTestPostDomain()
	resp, err := domain.Create(ctx, &model.CreatePostRequest{
		Body: "Bugün kod yazdık #golang #backend",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"golang", "backend"}, resp.Post.Hashtags)
	require.Equal(t, testutil.User1.ID, resp.Post.Author.ID)

	// Creating a post awards points and unlocks the first-post achievement.
	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(gamification.PointsCreatePost+10), user.Points)

	unlocked, err := repository.NewAchievementRepository().GetByUser(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
}

func Test_postDomain_Create_EmptyBody(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertUsers(ctx)

	domain := newTestPostDomain()
	_, err := domain.Create(ctx, &model.CreatePostRequest{Body: "   "})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_postDomain_Create_TooLongBody(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertUsers(ctx)

	domain := newTestPostDomain()
	_, err := domain.Create(ctx, &model.CreatePostRequest{
		Body: strings.Repeat("a", maxPostBodyLength+1),
	})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_postDomain_Like(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.InsertFixture(ctx)

	domain := newTestPostDomain()
	_, err := domain.Like(ctx, &model.LikePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	post, err := repository.NewPostRepository().GetByID(ctx, testutil.Post1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, post.LikeCount)

	// The author got a like notification.
	unread, err := repository.NewNotificationRepository().CountUnread(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)

	// Liking twice neither double counts nor double notifies.
	_, err = domain.Like(ctx, &model.LikePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	post, err = repository.NewPostRepository().GetByID(ctx, testutil.Post1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, post.LikeCount)

	unread, err = repository.NewNotificationRepository().CountUnread(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)
}

func Test_postDomain_Like_OwnPost(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertFixture(ctx)

	domain := newTestPostDomain()
	_, err := domain.Like(ctx, &model.LikePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	// No like notification for liking your own post. The liker's
	// achievement check may still notify, so filter by type.
	notifications, err := repository.NewNotificationRepository().
		GetByRecipient(ctx, testutil.User1.ID, 0, 10)
	require.NoError(t, err)
	for _, n := range notifications {
		require.NotEqual(t, entity.NotificationLike, n.Type)
	}
}

func Test_postDomain_Unlike(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.InsertFixture(ctx)

	domain := newTestPostDomain()
	_, err := domain.Like(ctx, &model.LikePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	_, err = domain.Unlike(ctx, &model.UnlikePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	post, err := repository.NewPostRepository().GetByID(ctx, testutil.Post1.ID)
	require.NoError(t, err)
	require.Equal(t, 0, post.LikeCount)

	// Unliking a post that was never liked is harmless.
	_, err = domain.Unlike(ctx, &model.UnlikePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
}

func Test_postDomain_AddComment(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.InsertFixture(ctx)

	domain := newTestPostDomain()
	resp, err := domain.AddComment(ctx, &model.AddCommentRequest{
		PostID: testutil.Post1.ID,
		Body:   "Harika gönderi!",
	})
	require.NoError(t, err)
	require.Equal(t, "Harika gönderi!", resp.Comment.Body)
	require.Equal(t, testutil.User2.ID, resp.Comment.Author.ID)

	post, err := repository.NewPostRepository().GetByID(ctx, testutil.Post1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, post.CommentCount)

	// Commenting awards points to the commenter.
	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(gamification.PointsAddComment), user.Points)

	// The post author got a comment notification.
	unread, err := repository.NewNotificationRepository().CountUnread(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)
}

func Test_postDomain_Get(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.InsertFixture(ctx)

	domain := newTestPostDomain()
	_, err := domain.AddComment(ctx, &model.AddCommentRequest{
		PostID: testutil.Post1.ID,
		Body:   "İlk yorum",
	})
	require.NoError(t, err)

	resp, err := domain.Get(ctx, &model.GetPostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Post1.Body, resp.Post.Body)
	require.Len(t, resp.Comments, 1)
	require.False(t, resp.Post.LikedByMe)

	_, err = domain.Like(ctx, &model.LikePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	resp, err = domain.Get(ctx, &model.GetPostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.True(t, resp.Post.LikedByMe)
}

func Test_postDomain_Get_NotFound(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertFixture(ctx)

	domain := newTestPostDomain()
	_, err := domain.Get(ctx, &model.GetPostRequest{PostID: "no-such-post"})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_postDomain_GetFeed(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	domain := newTestPostDomain()

	// User1 and user2 each post; user2 follows user1.
	user1Ctx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err := domain.Create(user1Ctx, &model.CreatePostRequest{Body: "birinci gönderi"})
	require.NoError(t, err)

	user2Ctx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err = domain.Create(user2Ctx, &model.CreatePostRequest{Body: "ikinci gönderi"})
	require.NoError(t, err)

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	_, err = domain.Create(adminCtx, &model.CreatePostRequest{Body: "üçüncü gönderi"})
	require.NoError(t, err)

	err = repository.NewFollowerRepository().Create(ctx, &entity.Follower{
		FollowerID: testutil.User2.ID,
		FollowedID: testutil.User1.ID,
	})
	require.NoError(t, err)

	// The feed has own posts plus followed posts, never strangers' posts.
	resp, err := domain.GetFeed(user2Ctx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 2)

	bodies := []string{resp.Posts[0].Body, resp.Posts[1].Body}
	require.Contains(t, bodies, "birinci gönderi")
	require.Contains(t, bodies, "ikinci gönderi")
}

func Test_postDomain_GetUserPosts(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertFixture(ctx)

	domain := newTestPostDomain()
	resp, err := domain.GetUserPosts(ctx, &model.GetUserPostsRequest{
		Handle: testutil.User1.Handle,
	})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	require.Equal(t, testutil.Post1.ID, resp.Posts[0].ID)

	empty, err := domain.GetUserPosts(ctx, &model.GetUserPostsRequest{
		Handle: testutil.User2.Handle,
	})
	require.NoError(t, err)
	require.Len(t, empty.Posts, 0)
}
