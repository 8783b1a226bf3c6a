package gamification

import (
	"context"
	"fmt"

	"github.com/sosyal-lab/backend/internal/common"
	"github.com/sosyal-lab/backend/internal/domain/notification"
	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"github.com/sosyal-lab/backend/pkg/xredis"
)

// Point rewards per action.
const (
	PointsCreatePost = 10
	PointsAddComment = 5
	PointsFirstLike  = 2
)

// LevelThreshold is the experience required to leave the given level.
func LevelThreshold(level int) int {
	return level * 100
}

// Engine owns points, levels and achievements. Points and experience grow
// together; experience resets on level-up while points only ever grow.
type Engine struct {
	userRepo        repository.UserRepository
	postRepo        repository.PostRepository
	followerRepo    repository.FollowerRepository
	achievementRepo repository.AchievementRepository
	fanout          *notification.Fanout
	redisClient     xredis.Client
}

func NewEngine(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	followerRepo repository.FollowerRepository,
	achievementRepo repository.AchievementRepository,
	fanout *notification.Fanout,
	redisClient xredis.Client,
) *Engine {
	return &Engine{
		userRepo:        userRepo,
		postRepo:        postRepo,
		followerRepo:    followerRepo,
		achievementRepo: achievementRepo,
		fanout:          fanout,
		redisClient:     redisClient,
	}
}

// AddPoints grants points and experience in one statement, then checks the
// level threshold a single time. Two concurrent level-up attempts race on a
// guarded update, so exactly one of them wins.
func (e *Engine) AddPoints(ctx context.Context, userID string, amount int64) error {
	if err := e.userRepo.IncreasePoints(ctx, userID, amount); err != nil {
		return err
	}

	if e.redisClient != nil {
		err := e.redisClient.ZIncrBy(ctx, common.RedisKeyLeaderboard(), amount, userID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update leaderboard: %v", err)
		}
	}

	user, err := e.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	threshold := LevelThreshold(user.Level)
	if user.Experience < threshold {
		return nil
	}

	leveledUp, err := e.userRepo.UpdateLevel(ctx, userID, user.Level, threshold)
	if err != nil {
		return err
	}

	if leveledUp {
		err := e.fanout.Notify(ctx, userID, entity.NotificationLevelUp,
			fmt.Sprintf("Tebrikler! Seviye %d oldun!", user.Level+1), "")
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot send level-up notification: %v", err)
		}
	}

	return nil
}

// CheckAchievements evaluates every achievement condition against the
// user's live statistics and unlocks the ones newly satisfied. Reward
// points are granted through AddPoints but do not trigger a recursive
// achievement check.
func (e *Engine) CheckAchievements(ctx context.Context, userID string) error {
	achievements, err := e.achievementRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	stats, err := e.collectStats(ctx, userID)
	if err != nil {
		return err
	}

	for _, achievement := range achievements {
		if !stats.satisfies(achievement.Condition) {
			continue
		}

		unlocked, err := e.achievementRepo.Unlock(ctx, userID, achievement.ID)
		if err != nil {
			return err
		}

		if !unlocked {
			continue
		}

		if achievement.Points > 0 {
			if err := e.AddPoints(ctx, userID, achievement.Points); err != nil {
				return err
			}
		}

		err = e.fanout.Notify(ctx, userID, entity.NotificationAchievement,
			fmt.Sprintf("Yeni başarım kazandın: %s", achievement.Name), achievement.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot send achievement notification: %v", err)
		}
	}

	return nil
}

type userStats struct {
	postsCount     int64
	followersCount int64
	points         int64
}

func (e *Engine) collectStats(ctx context.Context, userID string) (*userStats, error) {
	postsCount, err := e.postRepo.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	followersCount, err := e.followerRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}

	user, err := e.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &userStats{
		postsCount:     postsCount,
		followersCount: followersCount,
		points:         user.Points,
	}, nil
}

func (s *userStats) satisfies(condition entity.AchievementCondition) bool {
	switch condition {
	case entity.ConditionPostsCount1:
		return s.postsCount >= 1
	case entity.ConditionPostsCount10:
		return s.postsCount >= 10
	case entity.ConditionFollowers5:
		return s.followersCount >= 5
	case entity.ConditionFollowers20:
		return s.followersCount >= 20
	case entity.ConditionPoints100:
		return s.points >= 100
	case entity.ConditionPoints500:
		return s.points >= 500
	}

	return false
}
