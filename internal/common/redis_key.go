package common

import "fmt"

func RedisKeyOnlineUsers() string {
	return "online_users"
}

func RedisKeyLeaderboard() string {
	return "leaderboard:points"
}

func RedisKeyPostLikes(postID string) string {
	return fmt.Sprintf("post_likes:%s", postID)
}

func RedisKeyFeed(userID string) string {
	return fmt.Sprintf("feed:%s", userID)
}

func RedisKeySiteStats() string {
	return "site_stats"
}

func RedisKeySecurityLog() string {
	return "security_log"
}
