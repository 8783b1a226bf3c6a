package domain

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sosyal-lab/backend/internal/common"
	"github.com/sosyal-lab/backend/internal/domain/gamification"
	"github.com/sosyal-lab/backend/internal/domain/notification"
	"github.com/sosyal-lab/backend/internal/domain/search"
	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"github.com/sosyal-lab/backend/pkg/xredis"
	"gorm.io/gorm"
)

const maxPostBodyLength = 2000

var hashtagRegexp = regexp.MustCompile(`#\w+`)

type PostDomain interface {
	Create(ctx context.Context, req *model.CreatePostRequest) (*model.CreatePostResponse, error)
	Get(ctx context.Context, req *model.GetPostRequest) (*model.GetPostResponse, error)
	Like(ctx context.Context, req *model.LikePostRequest) (*model.LikePostResponse, error)
	Unlike(ctx context.Context, req *model.UnlikePostRequest) (*model.UnlikePostResponse, error)
	AddComment(ctx context.Context, req *model.AddCommentRequest) (*model.AddCommentResponse, error)
	GetFeed(ctx context.Context, req *model.GetFeedRequest) (*model.GetFeedResponse, error)
	GetUserPosts(ctx context.Context, req *model.GetUserPostsRequest) (*model.GetUserPostsResponse, error)
}

type postDomain struct {
	postRepo     repository.PostRepository
	postLikeRepo repository.PostLikeRepository
	commentRepo  repository.CommentRepository
	userRepo     repository.UserRepository
	followerRepo repository.FollowerRepository
	engine       *gamification.Engine
	fanout       *notification.Fanout
	searchCaller search.Caller
	redisClient  xredis.Client
}

func NewPostDomain(
	postRepo repository.PostRepository,
	postLikeRepo repository.PostLikeRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	followerRepo repository.FollowerRepository,
	engine *gamification.Engine,
	fanout *notification.Fanout,
	searchCaller search.Caller,
	redisClient xredis.Client,
) *postDomain {
	return &postDomain{
		postRepo:     postRepo,
		postLikeRepo: postLikeRepo,
		commentRepo:  commentRepo,
		userRepo:     userRepo,
		followerRepo: followerRepo,
		engine:       engine,
		fanout:       fanout,
		searchCaller: searchCaller,
		redisClient:  redisClient,
	}
}

// ExtractHashtags returns the #word tokens of the body without their #
// prefix, case preserved, deduplicated, in order of first appearance.
func ExtractHashtags(body string) []string {
	seen := map[string]bool{}
	hashtags := []string{}
	for _, match := range hashtagRegexp.FindAllString(body, -1) {
		tag := match[1:]
		if !seen[tag] {
			seen[tag] = true
			hashtags = append(hashtags, tag)
		}
	}

	return hashtags
}

func (d *postDomain) Create(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a non-empty body")
	}

	if len(body) > maxPostBodyLength {
		return nil, errorx.New(errorx.BadRequest,
			"Body must not exceed %d characters", maxPostBodyLength)
	}

	authorID := xcontext.RequestUserID(ctx)
	post := &entity.Post{
		Base:     entity.Base{ID: uuid.NewString()},
		AuthorID: authorID,
		Body:     body,
		ImageURL: req.ImageURL,
		Hashtags: strings.Join(ExtractHashtags(body), " "),
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	if d.searchCaller != nil {
		err := d.searchCaller.Index(search.PostDoc, post.ID, search.PostData{
			Body:     post.Body,
			Hashtags: post.Hashtags,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot index post: %v", err)
		}
	}

	if err := d.engine.AddPoints(ctx, authorID, gamification.PointsCreatePost); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add points: %v", err)
	}

	if err := d.engine.CheckAchievements(ctx, authorID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check achievements: %v", err)
	}

	author, err := d.userRepo.GetByID(ctx, authorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get author: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreatePostResponse{Post: model.ConvertPost(post, author, false)}, nil
}

func (d *postDomain) Get(
	ctx context.Context, req *model.GetPostRequest,
) (*model.GetPostResponse, error) {
	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	author, err := d.userRepo.GetByID(ctx, post.AuthorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get author: %v", err)
		return nil, errorx.Unknown
	}

	comments, err := d.commentRepo.GetByPost(ctx, post.ID, 0, maxLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	clientComments, err := d.convertComments(ctx, comments)
	if err != nil {
		return nil, err
	}

	return &model.GetPostResponse{
		Post:     model.ConvertPost(post, author, d.likedByMe(ctx, post.ID)),
		Comments: clientComments,
	}, nil
}

func (d *postDomain) Like(
	ctx context.Context, req *model.LikePostRequest,
) (*model.LikePostResponse, error) {
	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	existed, err := d.hasLiked(ctx, post.ID, userID)
	if err != nil {
		return nil, err
	}

	// A second like of the same post is a no-op.
	if existed {
		return &model.LikePostResponse{}, nil
	}

	err = d.postLikeRepo.Create(ctx, &entity.PostLike{PostID: post.ID, UserID: userID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create like: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.syncLikeCount(ctx, post.ID); err != nil {
		return nil, err
	}

	if d.redisClient != nil {
		err := d.redisClient.SAdd(ctx, common.RedisKeyPostLikes(post.ID), userID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache like: %v", err)
		}
	}

	if err := d.engine.AddPoints(ctx, userID, gamification.PointsFirstLike); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add points: %v", err)
	}

	if err := d.engine.CheckAchievements(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check achievements: %v", err)
	}

	if post.AuthorID != userID {
		liker, err := d.userRepo.GetByID(ctx, userID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get liker: %v", err)
			return nil, errorx.Unknown
		}

		err = d.fanout.Notify(ctx, post.AuthorID, entity.NotificationLike,
			fmt.Sprintf("%s gönderini beğendi", liker.Handle), post.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot send like notification: %v", err)
		}
	}

	return &model.LikePostResponse{}, nil
}

func (d *postDomain) Unlike(
	ctx context.Context, req *model.UnlikePostRequest,
) (*model.UnlikePostResponse, error) {
	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	if err := d.postLikeRepo.Delete(ctx, post.ID, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete like: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.syncLikeCount(ctx, post.ID); err != nil {
		return nil, err
	}

	if d.redisClient != nil {
		err := d.redisClient.SRem(ctx, common.RedisKeyPostLikes(post.ID), userID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot drop cached like: %v", err)
		}
	}

	return &model.UnlikePostResponse{}, nil
}

func (d *postDomain) AddComment(
	ctx context.Context, req *model.AddCommentRequest,
) (*model.AddCommentResponse, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a non-empty body")
	}

	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	authorID := xcontext.RequestUserID(ctx)
	comment := &entity.Comment{
		Base:     entity.Base{ID: uuid.NewString()},
		PostID:   post.ID,
		AuthorID: authorID,
		Body:     body,
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.commentRepo.CountByPost(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count comments: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.UpdateCommentCount(ctx, post.ID, count); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update comment count: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.engine.AddPoints(ctx, authorID, gamification.PointsAddComment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add points: %v", err)
	}

	author, err := d.userRepo.GetByID(ctx, authorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comment author: %v", err)
		return nil, errorx.Unknown
	}

	if post.AuthorID != authorID {
		err = d.fanout.Notify(ctx, post.AuthorID, entity.NotificationComment,
			fmt.Sprintf("%s gönderine yorum yaptı", author.Handle), post.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot send comment notification: %v", err)
		}
	}

	return &model.AddCommentResponse{Comment: model.ConvertComment(comment, author)}, nil
}

func (d *postDomain) GetFeed(
	ctx context.Context, req *model.GetFeedRequest,
) (*model.GetFeedResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	offset, limit := normalizePagination(req.Offset, req.Limit)

	// Only the first page is cached, deeper pages are rare.
	cacheable := d.redisClient != nil && offset == 0
	if cacheable {
		var cached model.GetFeedResponse
		if err := d.redisClient.GetObj(ctx, common.RedisKeyFeed(userID), &cached); err == nil {
			return &cached, nil
		}
	}

	followingIDs, err := d.followerRepo.GetFollowingIDs(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following ids: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := append(followingIDs, userID)
	posts, err := d.postRepo.GetByAuthors(ctx, authorIDs, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get feed posts: %v", err)
		return nil, errorx.Unknown
	}

	clientPosts, err := d.convertPosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	resp := &model.GetFeedResponse{Posts: clientPosts}
	if cacheable {
		ttl := xcontext.Configs(ctx).Cache.FeedTTL
		if err := d.redisClient.SetObj(ctx, common.RedisKeyFeed(userID), resp, ttl); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache feed: %v", err)
		}
	}

	return resp, nil
}

func (d *postDomain) GetUserPosts(
	ctx context.Context, req *model.GetUserPostsRequest,
) (*model.GetUserPostsResponse, error) {
	if req.Handle == "" {
		return nil, errorx.New(errorx.BadRequest, "Require handle")
	}

	user, err := d.userRepo.GetByHandle(ctx, req.Handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	offset, limit := normalizePagination(req.Offset, req.Limit)
	posts, err := d.postRepo.GetByAuthor(ctx, user.ID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user posts: %v", err)
		return nil, errorx.Unknown
	}

	clientPosts, err := d.convertPosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	return &model.GetUserPostsResponse{Posts: clientPosts}, nil
}

func (d *postDomain) getPost(ctx context.Context, postID string) (*entity.Post, error) {
	if postID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require post id")
	}

	post, err := d.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	return post, nil
}

func (d *postDomain) hasLiked(ctx context.Context, postID, userID string) (bool, error) {
	likes, err := d.postLikeRepo.GetByPost(ctx, postID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get likes: %v", err)
		return false, errorx.Unknown
	}

	for _, like := range likes {
		if like.UserID == userID {
			return true, nil
		}
	}

	return false, nil
}

func (d *postDomain) likedByMe(ctx context.Context, postID string) bool {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return false
	}

	liked, err := d.hasLiked(ctx, postID, userID)
	if err != nil {
		return false
	}

	return liked
}

// syncLikeCount recomputes the denormalized counter from the like rows, so
// racing like and unlike requests converge on the true count.
func (d *postDomain) syncLikeCount(ctx context.Context, postID string) error {
	count, err := d.postLikeRepo.Count(ctx, postID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count likes: %v", err)
		return errorx.Unknown
	}

	if err := d.postRepo.UpdateLikeCount(ctx, postID, count); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update like count: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *postDomain) convertPosts(ctx context.Context, posts []entity.Post) ([]model.Post, error) {
	authorIDs := []string{}
	for _, post := range posts {
		authorIDs = append(authorIDs, post.AuthorID)
	}

	authors, err := d.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get authors: %v", err)
		return nil, errorx.Unknown
	}

	authorByID := map[string]entity.User{}
	for _, author := range authors {
		authorByID[author.ID] = author
	}

	result := []model.Post{}
	for i := range posts {
		author := authorByID[posts[i].AuthorID]
		result = append(result, model.ConvertPost(&posts[i], &author, d.likedByMe(ctx, posts[i].ID)))
	}

	return result, nil
}

func (d *postDomain) convertComments(
	ctx context.Context, comments []entity.Comment,
) ([]model.Comment, error) {
	authorIDs := []string{}
	for _, comment := range comments {
		authorIDs = append(authorIDs, comment.AuthorID)
	}

	authors, err := d.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comment authors: %v", err)
		return nil, errorx.Unknown
	}

	authorByID := map[string]entity.User{}
	for _, author := range authors {
		authorByID[author.ID] = author
	}

	result := []model.Comment{}
	for i := range comments {
		author := authorByID[comments[i].AuthorID]
		result = append(result, model.ConvertComment(&comments[i], &author))
	}

	return result, nil
}
