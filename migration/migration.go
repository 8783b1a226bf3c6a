package migration

import (
	"context"

	"github.com/google/uuid"
	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Follower{},
		&entity.Post{},
		&entity.PostLike{},
		&entity.Comment{},
		&entity.Achievement{},
		&entity.UserAchievement{},
		&entity.Notification{},
		&entity.Conversation{},
		&entity.ConversationMember{},
		&entity.Message{},
	)
}

// SeedAchievements upserts the built-in achievement table. Name is the
// conflict key so re-running the seed updates rewards in place and never
// duplicates rows.
func SeedAchievements(ctx context.Context) error {
	achievements := []entity.Achievement{
		{
			Name:        "İlk Gönderi",
			Description: "İlk gönderini paylaştın",
			Points:      10,
			Condition:   entity.ConditionPostsCount1,
		},
		{
			Name:        "Aktif Kullanıcı",
			Description: "10 gönderi paylaştın",
			Points:      50,
			Condition:   entity.ConditionPostsCount10,
		},
		{
			Name:        "Popüler",
			Description: "5 takipçiye ulaştın",
			Points:      25,
			Condition:   entity.ConditionFollowers5,
		},
		{
			Name:        "Yıldız",
			Description: "20 takipçiye ulaştın",
			Points:      100,
			Condition:   entity.ConditionFollowers20,
		},
		{
			Name:        "Puan Avcısı",
			Description: "100 puana ulaştın",
			Points:      20,
			Condition:   entity.ConditionPoints100,
		},
		{
			Name:        "Efsane",
			Description: "500 puana ulaştın",
			Points:      100,
			Condition:   entity.ConditionPoints500,
		},
	}

	for i := range achievements {
		achievements[i].ID = uuid.NewString()
		err := xcontext.DB(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "name"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"description": achievements[i].Description,
					"points":      achievements[i].Points,
					"condition":   achievements[i].Condition,
				}),
			}).Create(&achievements[i]).Error
		if err != nil {
			return err
		}
	}

	return nil
}
