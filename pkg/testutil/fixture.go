package testutil

import (
	"context"

	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/internal/repository"
)

// Well-known fixture rows shared by domain tests.
var (
	User1 = entity.User{
		Base:         entity.Base{ID: "user1"},
		Handle:       "ayse",
		PasswordHash: "not-a-real-hash",
		Role:         entity.UserRole,
		Level:        1,
	}

	User2 = entity.User{
		Base:         entity.Base{ID: "user2"},
		Handle:       "mehmet",
		PasswordHash: "not-a-real-hash",
		Role:         entity.UserRole,
		Level:        1,
	}

	Admin = entity.User{
		Base:         entity.Base{ID: "admin"},
		Handle:       "admin",
		PasswordHash: "not-a-real-hash",
		Role:         entity.AdminRole,
		Level:        1,
	}

	Post1 = entity.Post{
		Base:     entity.Base{ID: "post1"},
		AuthorID: "user1",
		Body:     "merhaba dünya #selam",
		Hashtags: "#selam",
	}
)

func InsertFixture(ctx context.Context) {
	InsertUsers(ctx)
	InsertPosts(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, u := range []entity.User{User1, User2, Admin} {
		user := u
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func InsertPosts(ctx context.Context) {
	postRepo := repository.NewPostRepository()
	post := Post1
	if err := postRepo.Create(ctx, &post); err != nil {
		panic(err)
	}
}
