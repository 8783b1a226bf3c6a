package domain

import (
	"context"
	"errors"

	"github.com/sosyal-lab/backend/internal/domain/search"
	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetUser(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error)
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
	UpdateProfile(ctx context.Context, req *model.UpdateProfileRequest) (*model.UpdateProfileResponse, error)
	GetMyAchievements(ctx context.Context, req *model.GetMyAchievementsRequest) (*model.GetMyAchievementsResponse, error)
}

type userDomain struct {
	userRepo        repository.UserRepository
	followerRepo    repository.FollowerRepository
	postRepo        repository.PostRepository
	achievementRepo repository.AchievementRepository
	searchCaller    search.Caller
}

func NewUserDomain(
	userRepo repository.UserRepository,
	followerRepo repository.FollowerRepository,
	postRepo repository.PostRepository,
	achievementRepo repository.AchievementRepository,
	searchCaller search.Caller,
) *userDomain {
	return &userDomain{
		userRepo:        userRepo,
		followerRepo:    followerRepo,
		postRepo:        postRepo,
		achievementRepo: achievementRepo,
		searchCaller:    searchCaller,
	}
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
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

	counts, err := d.profileCounts(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if requesterID := xcontext.RequestUserID(ctx); requesterID != "" {
		isFollowing, err = repository.IsFollowing(ctx, d.followerRepo, requesterID, user.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check following: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.GetUserResponse{
		User:           model.ConvertUser(user),
		FollowerCount:  counts.followers,
		FollowingCount: counts.following,
		PostCount:      counts.posts,
		IsFollowing:    isFollowing,
	}, nil
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	counts, err := d.profileCounts(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &model.GetMeResponse{
		User:           model.ConvertUser(user),
		FollowerCount:  counts.followers,
		FollowingCount: counts.following,
		PostCount:      counts.posts,
	}, nil
}

func (d *userDomain) UpdateProfile(
	ctx context.Context, req *model.UpdateProfileRequest,
) (*model.UpdateProfileResponse, error) {
	if len(req.Bio) > 500 {
		return nil, errorx.New(errorx.BadRequest, "Bio must not exceed 500 characters")
	}

	err := d.userRepo.UpdateProfile(ctx, xcontext.RequestUserID(ctx), map[string]any{
		"bio":        req.Bio,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"instagram":  req.Instagram,
		"twitter":    req.Twitter,
		"github":     req.Github,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update profile: %v", err)
		return nil, errorx.Unknown
	}

	if d.searchCaller != nil {
		user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
		if err == nil {
			err = d.searchCaller.Index(search.UserDoc, user.ID, search.UserData{
				Handle:    user.Handle,
				FirstName: user.FirstName,
				LastName:  user.LastName,
				Bio:       user.Bio,
			})
		}
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot reindex user: %v", err)
		}
	}

	return &model.UpdateProfileResponse{}, nil
}

func (d *userDomain) GetMyAchievements(
	ctx context.Context, req *model.GetMyAchievementsRequest,
) (*model.GetMyAchievementsResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	unlocked, err := d.achievementRepo.GetByUser(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user achievements: %v", err)
		return nil, errorx.Unknown
	}

	all, err := d.achievementRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get achievements: %v", err)
		return nil, errorx.Unknown
	}

	byID := map[string]entity.Achievement{}
	for _, a := range all {
		byID[a.ID] = a
	}

	achievements := []model.UserAchievement{}
	for _, ua := range unlocked {
		achievement, ok := byID[ua.AchievementID]
		if !ok {
			continue
		}

		achievements = append(achievements, model.UserAchievement{
			Name:        achievement.Name,
			Description: achievement.Description,
			Points:      achievement.Points,
			UnlockedAt:  ua.UnlockedAt.Format(model.DefaultTimeLayout),
		})
	}

	return &model.GetMyAchievementsResponse{Achievements: achievements}, nil
}

type profileCounts struct {
	followers int64
	following int64
	posts     int64
}

func (d *userDomain) profileCounts(ctx context.Context, userID string) (*profileCounts, error) {
	followers, err := d.followerRepo.CountFollowers(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	following, err := d.followerRepo.CountFollowing(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count following: %v", err)
		return nil, errorx.Unknown
	}

	posts, err := d.postRepo.CountByAuthor(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	return &profileCounts{followers: followers, following: following, posts: posts}, nil
}
