package model

type User struct {
	ID         string `json:"id"`
	Handle     string `json:"handle"`
	Bio        string `json:"bio"`
	AvatarURL  string `json:"avatar_url"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Instagram  string `json:"instagram"`
	Twitter    string `json:"twitter"`
	Github     string `json:"github"`
	Points     int64  `json:"points"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
	IsVerified bool   `json:"is_verified"`
}

type GetUserRequest struct {
	Handle string `json:"handle"`
}

type GetUserResponse struct {
	User           User  `json:"user"`
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
	PostCount      int64 `json:"post_count"`
	IsFollowing    bool  `json:"is_following"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User           User  `json:"user"`
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
	PostCount      int64 `json:"post_count"`
}

type UpdateProfileRequest struct {
	Bio       string `json:"bio"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	Github    string `json:"github"`
}

type UpdateProfileResponse struct{}

type GetMyAchievementsRequest struct{}

type GetMyAchievementsResponse struct {
	Achievements []UserAchievement `json:"achievements"`
}

type UserAchievement struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int64  `json:"points"`
	UnlockedAt  string `json:"unlocked_at"`
}

type AdminStatsRequest struct{}

type AdminStatsResponse struct {
	TotalUsers    int64 `json:"total_users"`
	TotalPosts    int64 `json:"total_posts"`
	TotalComments int64 `json:"total_comments"`
	TotalFollows  int64 `json:"total_follows"`
	TotalMessages int64 `json:"total_messages"`
	OnlineUsers   int64 `json:"online_users"`
}
