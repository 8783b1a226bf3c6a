package model

type Conversation struct {
	ID          string   `json:"id"`
	IsGroup     bool     `json:"is_group"`
	Name        string   `json:"name,omitempty"`
	Members     []User   `json:"members"`
	LastMessage *Message `json:"last_message,omitempty"`
}

type Message struct {
	ID             int64  `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Content        string `json:"content"`
	IsRead         bool   `json:"is_read"`
	CreatedAt      string `json:"created_at"`
}

type StartConversationRequest struct {
	Handle string `json:"handle"`
}

type StartConversationResponse struct {
	Conversation Conversation `json:"conversation"`
}

type SendMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
}

type SendMessageResponse struct {
	Message Message `json:"message"`
}

type GetMessagesRequest struct {
	ConversationID string `json:"conversation_id"`
	Offset         int    `json:"offset"`
	Limit          int    `json:"limit"`
}

type GetMessagesResponse struct {
	Messages []Message `json:"messages"`
}

type MarkConversationReadRequest struct {
	ConversationID string `json:"conversation_id"`
}

type MarkConversationReadResponse struct{}

type GetMyConversationsRequest struct{}

type GetMyConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
}
