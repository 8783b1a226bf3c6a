package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/sosyal-lab/backend/internal/domain/gamification"
	"github.com/sosyal-lab/backend/internal/domain/notification"
	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FollowerDomain interface {
	Follow(ctx context.Context, req *model.FollowRequest) (*model.FollowResponse, error)
	Unfollow(ctx context.Context, req *model.UnfollowRequest) (*model.UnfollowResponse, error)
	GetFollowers(ctx context.Context, req *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	GetFollowing(ctx context.Context, req *model.GetFollowingRequest) (*model.GetFollowingResponse, error)
}

type followerDomain struct {
	userRepo     repository.UserRepository
	followerRepo repository.FollowerRepository
	engine       *gamification.Engine
	fanout       *notification.Fanout
}

func NewFollowerDomain(
	userRepo repository.UserRepository,
	followerRepo repository.FollowerRepository,
	engine *gamification.Engine,
	fanout *notification.Fanout,
) *followerDomain {
	return &followerDomain{
		userRepo:     userRepo,
		followerRepo: followerRepo,
		engine:       engine,
		fanout:       fanout,
	}
}

func (d *followerDomain) Follow(
	ctx context.Context, req *model.FollowRequest,
) (*model.FollowResponse, error) {
	followerID := xcontext.RequestUserID(ctx)

	followed, err := d.resolveTarget(ctx, req.Handle)
	if err != nil {
		return nil, err
	}

	if followed.ID == followerID {
		return nil, errorx.New(errorx.BadRequest, "You cannot follow yourself")
	}

	existed, err := repository.IsFollowing(ctx, d.followerRepo, followerID, followed.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check follow edge: %v", err)
		return nil, errorx.Unknown
	}

	err = d.followerRepo.Create(ctx, &entity.Follower{
		FollowerID: followerID,
		FollowedID: followed.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follow edge: %v", err)
		return nil, errorx.Unknown
	}

	// A repeated follow is a no-op, without notification or achievement
	// side effects.
	if existed {
		return &model.FollowResponse{}, nil
	}

	follower, err := d.userRepo.GetByID(ctx, followerID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get follower: %v", err)
		return nil, errorx.Unknown
	}

	err = d.fanout.Notify(ctx, followed.ID, entity.NotificationFollow,
		fmt.Sprintf("%s seni takip etmeye başladı", follower.Handle), followerID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot send follow notification: %v", err)
	}

	if err := d.engine.CheckAchievements(ctx, followed.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check achievements: %v", err)
	}

	return &model.FollowResponse{}, nil
}

func (d *followerDomain) Unfollow(
	ctx context.Context, req *model.UnfollowRequest,
) (*model.UnfollowResponse, error) {
	followed, err := d.resolveTarget(ctx, req.Handle)
	if err != nil {
		return nil, err
	}

	err = d.followerRepo.Delete(ctx, xcontext.RequestUserID(ctx), followed.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete follow edge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnfollowResponse{}, nil
}

func (d *followerDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	user, err := d.resolveTarget(ctx, req.Handle)
	if err != nil {
		return nil, err
	}

	offset, limit := normalizePagination(req.Offset, req.Limit)
	edges, err := d.followerRepo.GetFollowers(ctx, user.ID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followers: %v", err)
		return nil, errorx.Unknown
	}

	ids := make([]string, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.FollowerID)
	}

	users, err := d.resolveUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowersResponse{Followers: users}, nil
}

func (d *followerDomain) GetFollowing(
	ctx context.Context, req *model.GetFollowingRequest,
) (*model.GetFollowingResponse, error) {
	user, err := d.resolveTarget(ctx, req.Handle)
	if err != nil {
		return nil, err
	}

	offset, limit := normalizePagination(req.Offset, req.Limit)
	edges, err := d.followerRepo.GetFollowing(ctx, user.ID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following: %v", err)
		return nil, errorx.Unknown
	}

	ids := make([]string, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.FollowedID)
	}

	users, err := d.resolveUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowingResponse{Following: users}, nil
}

func (d *followerDomain) resolveTarget(ctx context.Context, handle string) (*entity.User, error) {
	if handle == "" {
		return nil, errorx.New(errorx.BadRequest, "Require handle")
	}

	user, err := d.userRepo.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}

func (d *followerDomain) resolveUsers(ctx context.Context, ids []string) ([]model.User, error) {
	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	byID := map[string]entity.User{}
	for _, u := range users {
		byID[u.ID] = u
	}

	// Keep the edge ordering, GetByIDs does not preserve it.
	result := []model.User{}
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			result = append(result, model.ConvertUser(&u))
		}
	}

	return result, nil
}
