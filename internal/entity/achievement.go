package entity

import "time"

// AchievementCondition is a closed set of predicates. Adding a new unlock
// rule means adding a constant here and a case to the gamification engine,
// not storing an expression.
type AchievementCondition string

const (
	ConditionPostsCount1  AchievementCondition = "posts_count>=1"
	ConditionPostsCount10 AchievementCondition = "posts_count>=10"
	ConditionFollowers5   AchievementCondition = "followers_count>=5"
	ConditionFollowers20  AchievementCondition = "followers_count>=20"
	ConditionPoints100    AchievementCondition = "points>=100"
	ConditionPoints500    AchievementCondition = "points>=500"
)

type Achievement struct {
	Base
	Name        string `gorm:"unique;not null"`
	Description string
	Points      int64
	Condition   AchievementCondition
}

// UserAchievement records an unlock. The composite key makes a second
// unlock of the same achievement a conflict, which repositories ignore.
type UserAchievement struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	AchievementID string      `gorm:"primaryKey"`
	Achievement   Achievement `gorm:"foreignKey:AchievementID"`

	UnlockedAt time.Time
}
