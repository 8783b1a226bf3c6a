package model

import (
	"strings"
	"time"

	"github.com/sosyal-lab/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:         user.ID,
		Handle:     user.Handle,
		Bio:        user.Bio,
		AvatarURL:  user.AvatarURL,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Instagram:  user.Instagram,
		Twitter:    user.Twitter,
		Github:     user.Github,
		Points:     user.Points,
		Level:      user.Level,
		Experience: user.Experience,
		IsVerified: user.IsVerified,
	}
}

func ConvertPost(post *entity.Post, author *entity.User, likedByMe bool) Post {
	if post == nil {
		return Post{}
	}

	hashtags := []string{}
	if post.Hashtags != "" {
		hashtags = strings.Fields(post.Hashtags)
	}

	return Post{
		ID:           post.ID,
		Author:       ConvertUser(author),
		Body:         post.Body,
		ImageURL:     post.ImageURL,
		Hashtags:     hashtags,
		LikeCount:    post.LikeCount,
		CommentCount: post.CommentCount,
		LikedByMe:    likedByMe,
		CreatedAt:    post.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertComment(comment *entity.Comment, author *entity.User) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Author:    ConvertUser(author),
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertNotification(n *entity.Notification) Notification {
	if n == nil {
		return Notification{}
	}

	return Notification{
		ID:        n.ID,
		Message:   n.Message,
		Type:      string(n.Type),
		IsRead:    n.IsRead,
		RelatedID: n.RelatedID,
		CreatedAt: n.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertConversation(c *entity.Conversation, members []entity.User) Conversation {
	if c == nil {
		return Conversation{}
	}

	clientMembers := []User{}
	for i := range members {
		clientMembers = append(clientMembers, ConvertUser(&members[i]))
	}

	return Conversation{
		ID:      c.ID,
		IsGroup: c.IsGroup,
		Name:    c.Name,
		Members: clientMembers,
	}
}

func ConvertMessage(m *entity.Message) Message {
	if m == nil {
		return Message{}
	}

	return Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt.Format(DefaultTimeLayout),
	}
}
