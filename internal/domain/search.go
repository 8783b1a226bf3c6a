package domain

import (
	"context"
	"strings"

	"github.com/sosyal-lab/backend/internal/domain/search"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/xcontext"
)

type SearchDomain interface {
	Search(context.Context, *model.SearchRequest) (*model.SearchResponse, error)
}

type searchDomain struct {
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	searchCaller search.Caller
}

func NewSearchDomain(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	searchCaller search.Caller,
) *searchDomain {
	return &searchDomain{
		postRepo:     postRepo,
		userRepo:     userRepo,
		searchCaller: searchCaller,
	}
}

func (d *searchDomain) Search(
	ctx context.Context, req *model.SearchRequest,
) (*model.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, errorx.New(errorx.BadRequest, "Query cannot be empty")
	}

	offset, limit := normalizePagination(req.Offset, req.Limit)

	postIDs, err := d.searchCaller.Search(search.PostDoc, query, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search posts: %v", err)
		return nil, errorx.Unknown
	}

	userIDs, err := d.searchCaller.Search(search.UserDoc, query, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search users: %v", err)
		return nil, errorx.Unknown
	}

	posts := []model.Post{}
	for _, id := range postIDs {
		post, err := d.postRepo.GetByID(ctx, id)
		if err != nil {
			// The index can lag behind deletions, skip stale hits.
			continue
		}

		author, err := d.userRepo.GetByID(ctx, post.AuthorID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get author of post: %v", err)
			return nil, errorx.Unknown
		}

		posts = append(posts, model.ConvertPost(post, author, false))
	}

	users := []model.User{}
	if len(userIDs) > 0 {
		found, err := d.userRepo.GetByIDs(ctx, userIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
			return nil, errorx.Unknown
		}

		byID := map[string]model.User{}
		for i := range found {
			byID[found[i].ID] = model.ConvertUser(&found[i])
		}

		for _, id := range userIDs {
			if u, ok := byID[id]; ok {
				users = append(users, u)
			}
		}
	}

	return &model.SearchResponse{Posts: posts, Users: users}, nil
}
