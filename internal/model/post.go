package model

type Post struct {
	ID           string   `json:"id"`
	Author       User     `json:"author"`
	Body         string   `json:"body"`
	ImageURL     string   `json:"image_url,omitempty"`
	Hashtags     []string `json:"hashtags"`
	LikeCount    int      `json:"like_count"`
	CommentCount int      `json:"comment_count"`
	LikedByMe    bool     `json:"liked_by_me"`
	CreatedAt    string   `json:"created_at"`
}

type Comment struct {
	ID        string `json:"id"`
	PostID    string `json:"post_id"`
	Author    User   `json:"author"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

type CreatePostRequest struct {
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
}

type CreatePostResponse struct {
	Post Post `json:"post"`
}

type GetPostRequest struct {
	PostID string `json:"post_id"`
}

type GetPostResponse struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
}

type LikePostRequest struct {
	PostID string `json:"post_id"`
}

type LikePostResponse struct{}

type UnlikePostRequest struct {
	PostID string `json:"post_id"`
}

type UnlikePostResponse struct{}

type AddCommentRequest struct {
	PostID string `json:"post_id"`
	Body   string `json:"body"`
}

type AddCommentResponse struct {
	Comment Comment `json:"comment"`
}

type GetFeedRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetFeedResponse struct {
	Posts []Post `json:"posts"`
}

type GetUserPostsRequest struct {
	Handle string `json:"handle"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetUserPostsResponse struct {
	Posts []Post `json:"posts"`
}
