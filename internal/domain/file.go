package domain

import (
	"context"

	"github.com/sosyal-lab/backend/internal/common"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/storage"
	"github.com/sosyal-lab/backend/pkg/xcontext"
)

type FileDomain interface {
	UploadImage(context.Context, *model.UploadImageRequest) (*model.UploadImageResponse, error)
	UploadAvatar(context.Context, *model.UploadAvatarRequest) (*model.UploadAvatarResponse, error)
}

type fileDomain struct {
	fileStorage storage.Storage
	userRepo    repository.UserRepository
}

func NewFileDomain(
	fileStorage storage.Storage,
	userRepo repository.UserRepository,
) *fileDomain {
	return &fileDomain{
		fileStorage: fileStorage,
		userRepo:    userRepo,
	}
}

func (d *fileDomain) UploadImage(
	ctx context.Context, req *model.UploadImageRequest,
) (*model.UploadImageResponse, error) {
	img, mime, filename, err := common.ReadImageUpload(ctx, "image")
	if err != nil {
		return nil, err
	}

	resp, err := common.ResizeAndUpload(ctx, d.fileStorage, img, 0, "images", mime, filename)
	if err != nil {
		return nil, err
	}

	return &model.UploadImageResponse{Url: resp.Url}, nil
}

func (d *fileDomain) UploadAvatar(
	ctx context.Context, req *model.UploadAvatarRequest,
) (*model.UploadAvatarResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	img, mime, filename, err := common.ReadImageUpload(ctx, "avatar")
	if err != nil {
		return nil, err
	}

	width := xcontext.Configs(ctx).File.AvatarWidth
	resp, err := common.ResizeAndUpload(ctx, d.fileStorage, img, width, "avatars", mime, filename)
	if err != nil {
		return nil, err
	}

	if err := d.userRepo.UpdateAvatar(ctx, userID, resp.Url); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update avatar of user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UploadAvatarResponse{Url: resp.Url}, nil
}
