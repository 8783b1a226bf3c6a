package domain

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sosyal-lab/backend/internal/common"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"github.com/sosyal-lab/backend/pkg/xredis"
)

type StatisticDomain interface {
	GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetSiteStats(ctx context.Context, req *model.GetSiteStatsRequest) (*model.GetSiteStatsResponse, error)
	AdminStats(ctx context.Context, req *model.AdminStatsRequest) (*model.AdminStatsResponse, error)
}

type statisticDomain struct {
	userRepo     repository.UserRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	followerRepo repository.FollowerRepository
	chatRepo     repository.ChatRepository
	redisClient  xredis.Client
}

func NewStatisticDomain(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	followerRepo repository.FollowerRepository,
	chatRepo repository.ChatRepository,
	redisClient xredis.Client,
) *statisticDomain {
	return &statisticDomain{
		userRepo:     userRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		followerRepo: followerRepo,
		chatRepo:     chatRepo,
		redisClient:  redisClient,
	}
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	key := common.RedisKeyLeaderboard()

	ok, err := d.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, errorx.Unknown
	}

	// The sorted set is rebuilt lazily after redis loses it.
	if !ok {
		if err := d.loadLeaderboardFromDB(ctx, key); err != nil {
			return nil, err
		}
	}

	offset, limit := normalizePagination(req.Offset, req.Limit)
	results, err := d.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	ids := []string{}
	for _, z := range results {
		ids = append(ids, z.Member.(string))
	}

	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard users: %v", err)
		return nil, errorx.Unknown
	}

	userByID := map[string]model.User{}
	for i := range users {
		userByID[users[i].ID] = model.ConvertUser(&users[i])
	}

	leaderboard := []model.LeaderboardEntry{}
	for i, z := range results {
		leaderboard = append(leaderboard, model.LeaderboardEntry{
			User:   userByID[z.Member.(string)],
			Points: int64(z.Score),
			Rank:   offset + i + 1,
		})
	}

	return &model.GetLeaderboardResponse{Leaderboard: leaderboard}, nil
}

func (d *statisticDomain) GetSiteStats(
	ctx context.Context, req *model.GetSiteStatsRequest,
) (*model.GetSiteStatsResponse, error) {
	var cached model.GetSiteStatsResponse
	if err := d.redisClient.GetObj(ctx, common.RedisKeySiteStats(), &cached); err == nil {
		return &cached, nil
	}

	totalUsers, err := d.userRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	totalPosts, err := d.postRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	online, err := d.redisClient.SCard(ctx, common.RedisKeyOnlineUsers())
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot count online users: %v", err)
	}

	resp := &model.GetSiteStatsResponse{
		TotalUsers:  totalUsers,
		TotalPosts:  totalPosts,
		OnlineUsers: int64(online),
	}

	ttl := xcontext.Configs(ctx).Cache.SiteStatsTTL
	if err := d.redisClient.SetObj(ctx, common.RedisKeySiteStats(), resp, ttl); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache site stats: %v", err)
	}

	return resp, nil
}

func (d *statisticDomain) AdminStats(
	ctx context.Context, req *model.AdminStatsRequest,
) (*model.AdminStatsResponse, error) {
	totalUsers, err := d.userRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	totalPosts, err := d.postRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	totalComments, err := d.commentRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count comments: %v", err)
		return nil, errorx.Unknown
	}

	totalFollows, err := d.followerRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count follows: %v", err)
		return nil, errorx.Unknown
	}

	totalMessages, err := d.chatRepo.CountMessages(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count messages: %v", err)
		return nil, errorx.Unknown
	}

	online, err := d.redisClient.SCard(ctx, common.RedisKeyOnlineUsers())
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot count online users: %v", err)
	}

	return &model.AdminStatsResponse{
		TotalUsers:    totalUsers,
		TotalPosts:    totalPosts,
		TotalComments: totalComments,
		TotalFollows:  totalFollows,
		TotalMessages: totalMessages,
		OnlineUsers:   int64(online),
	}, nil
}

func (d *statisticDomain) loadLeaderboardFromDB(ctx context.Context, key string) error {
	users, err := d.userRepo.GetWithPoints(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load users for leaderboard: %v", err)
		return errorx.Unknown
	}

	for _, user := range users {
		err := d.redisClient.ZAdd(ctx, key, redis.Z{
			Member: user.ID,
			Score:  float64(user.Points),
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot add user to leaderboard: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
