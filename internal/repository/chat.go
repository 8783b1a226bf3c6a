package repository

import (
	"context"

	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type ChatRepository interface {
	CreateConversation(ctx context.Context, conversation *entity.Conversation) error
	GetConversation(ctx context.Context, id string) (*entity.Conversation, error)

	// GetDirectConversation finds the existing 1:1 conversation between the
	// two users regardless of argument order.
	GetDirectConversation(ctx context.Context, userID, otherID string) (*entity.Conversation, error)

	AddMember(ctx context.Context, member *entity.ConversationMember) error
	GetMembers(ctx context.Context, conversationID string) ([]entity.ConversationMember, error)
	IsMember(ctx context.Context, conversationID, userID string) (bool, error)
	GetConversationsByUser(ctx context.Context, userID string) ([]entity.Conversation, error)

	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessages(ctx context.Context, conversationID string, offset, limit int) ([]entity.Message, error)
	GetLastMessage(ctx context.Context, conversationID string) (*entity.Message, error)
	CountUnread(ctx context.Context, conversationID, userID string) (int64, error)
	CountMessages(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, conversationID, userID string) error
}

type chatRepository struct{}

func NewChatRepository() *chatRepository {
	return &chatRepository{}
}

func (r *chatRepository) CreateConversation(ctx context.Context, conversation *entity.Conversation) error {
	return xcontext.DB(ctx).Create(conversation).Error
}

func (r *chatRepository) GetConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	var result entity.Conversation
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *chatRepository) GetDirectConversation(
	ctx context.Context, userID, otherID string,
) (*entity.Conversation, error) {
	var result entity.Conversation
	err := xcontext.DB(ctx).
		Model(&entity.Conversation{}).
		Joins("JOIN conversation_members m1 ON m1.conversation_id=conversations.id AND m1.user_id=?", userID).
		Joins("JOIN conversation_members m2 ON m2.conversation_id=conversations.id AND m2.user_id=?", otherID).
		Where("conversations.is_group=false").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *chatRepository) AddMember(ctx context.Context, member *entity.ConversationMember) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(member).Error
}

func (r *chatRepository) GetMembers(
	ctx context.Context, conversationID string,
) ([]entity.ConversationMember, error) {
	var result []entity.ConversationMember
	err := xcontext.DB(ctx).
		Where("conversation_id=?", conversationID).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *chatRepository) IsMember(ctx context.Context, conversationID, userID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.ConversationMember{}).
		Where("conversation_id=? AND user_id=?", conversationID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *chatRepository) GetConversationsByUser(
	ctx context.Context, userID string,
) ([]entity.Conversation, error) {
	var result []entity.Conversation
	err := xcontext.DB(ctx).
		Model(&entity.Conversation{}).
		Joins("JOIN conversation_members ON conversation_members.conversation_id=conversations.id").
		Where("conversation_members.user_id=?", userID).
		Order("conversations.updated_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	return xcontext.DB(ctx).Create(message).Error
}

func (r *chatRepository) GetMessages(
	ctx context.Context, conversationID string, offset, limit int,
) ([]entity.Message, error) {
	var result []entity.Message
	err := xcontext.DB(ctx).
		Where("conversation_id=?", conversationID).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *chatRepository) GetLastMessage(ctx context.Context, conversationID string) (*entity.Message, error) {
	var result entity.Message
	err := xcontext.DB(ctx).
		Where("conversation_id=?", conversationID).
		Order("id DESC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *chatRepository) CountUnread(ctx context.Context, conversationID, userID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Message{}).
		Where("conversation_id=? AND sender_id<>? AND is_read=false", conversationID, userID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *chatRepository) CountMessages(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.Message{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

func (r *chatRepository) MarkRead(ctx context.Context, conversationID, userID string) error {
	return xcontext.DB(ctx).
		Model(&entity.Message{}).
		Where("conversation_id=? AND sender_id<>? AND is_read=false", conversationID, userID).
		Update("is_read", true).Error
}
