package model

type FollowRequest struct {
	Handle string `json:"handle"`
}

type FollowResponse struct{}

type UnfollowRequest struct {
	Handle string `json:"handle"`
}

type UnfollowResponse struct{}

type GetFollowersRequest struct {
	Handle string `json:"handle"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetFollowersResponse struct {
	Followers []User `json:"followers"`
}

type GetFollowingRequest struct {
	Handle string `json:"handle"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetFollowingResponse struct {
	Following []User `json:"following"`
}
