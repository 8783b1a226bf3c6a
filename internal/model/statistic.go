package model

type LeaderboardEntry struct {
	User   User  `json:"user"`
	Points int64 `json:"points"`
	Rank   int   `json:"rank"`
}

type GetLeaderboardRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetLeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type GetSiteStatsRequest struct{}

type GetSiteStatsResponse struct {
	TotalUsers  int64 `json:"total_users"`
	TotalPosts  int64 `json:"total_posts"`
	OnlineUsers int64 `json:"online_users"`
}

type SearchRequest struct {
	Query  string `json:"query"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type SearchResponse struct {
	Posts []Post `json:"posts"`
	Users []User `json:"users"`
}
