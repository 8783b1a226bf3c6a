package model

type UploadAvatarRequest struct{}

type UploadAvatarResponse struct {
	Url string `json:"url"`
}

type UploadImageRequest struct{}

type UploadImageResponse struct {
	Url string `json:"url"`
}
