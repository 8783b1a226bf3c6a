package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sosyal-lab/backend/internal/domain/notification"
	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const messagePreviewLength = 50

type ChatDomain interface {
	StartConversation(ctx context.Context, req *model.StartConversationRequest) (*model.StartConversationResponse, error)
	SendMessage(ctx context.Context, req *model.SendMessageRequest) (*model.SendMessageResponse, error)
	GetMessages(ctx context.Context, req *model.GetMessagesRequest) (*model.GetMessagesResponse, error)
	MarkConversationRead(ctx context.Context, req *model.MarkConversationReadRequest) (*model.MarkConversationReadResponse, error)
	GetMyConversations(ctx context.Context, req *model.GetMyConversationsRequest) (*model.GetMyConversationsResponse, error)
}

type chatDomain struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	fanout   *notification.Fanout
}

func NewChatDomain(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	fanout *notification.Fanout,
) *chatDomain {
	return &chatDomain{
		chatRepo: chatRepo,
		userRepo: userRepo,
		fanout:   fanout,
	}
}

// StartConversation returns the existing 1:1 conversation between the two
// users if there is one, otherwise it creates it. Starting a conversation
// twice never duplicates it.
func (d *chatDomain) StartConversation(
	ctx context.Context, req *model.StartConversationRequest,
) (*model.StartConversationResponse, error) {
	if req.Handle == "" {
		return nil, errorx.New(errorx.BadRequest, "Require handle")
	}

	userID := xcontext.RequestUserID(ctx)
	other, err := d.userRepo.GetByHandle(ctx, req.Handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if other.ID == userID {
		return nil, errorx.New(errorx.BadRequest, "You cannot message yourself")
	}

	conversation, err := d.chatRepo.GetDirectConversation(ctx, userID, other.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get conversation: %v", err)
			return nil, errorx.Unknown
		}

		conversation = &entity.Conversation{Base: entity.Base{ID: uuid.NewString()}}
		err := xcontext.WithDBTransaction(ctx, func(ctx context.Context) error {
			if err := d.chatRepo.CreateConversation(ctx, conversation); err != nil {
				return err
			}

			for _, memberID := range []string{userID, other.ID} {
				err := d.chatRepo.AddMember(ctx, &entity.ConversationMember{
					ConversationID: conversation.ID,
					UserID:         memberID,
				})
				if err != nil {
					return err
				}
			}

			return nil
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create conversation: %v", err)
			return nil, errorx.Unknown
		}
	}

	members, err := d.conversationMembers(ctx, conversation.ID)
	if err != nil {
		return nil, err
	}

	return &model.StartConversationResponse{
		Conversation: model.ConvertConversation(conversation, members),
	}, nil
}

func (d *chatDomain) SendMessage(
	ctx context.Context, req *model.SendMessageRequest,
) (*model.SendMessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a non-empty content")
	}

	userID := xcontext.RequestUserID(ctx)
	if err := d.requireMembership(ctx, req.ConversationID, userID); err != nil {
		return nil, err
	}

	message := &entity.Message{
		ID:             xcontext.SnowFlake(ctx).Generate().Int64(),
		ConversationID: req.ConversationID,
		SenderID:       userID,
		Content:        content,
	}

	if err := d.chatRepo.CreateMessage(ctx, message); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create message: %v", err)
		return nil, errorx.Unknown
	}

	sender, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get sender: %v", err)
		return nil, errorx.Unknown
	}

	clientMessage := model.ConvertMessage(message)

	members, err := d.chatRepo.GetMembers(ctx, req.ConversationID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get members: %v", err)
		return nil, errorx.Unknown
	}

	for _, member := range members {
		if member.UserID == userID {
			continue
		}

		err := d.fanout.Notify(ctx, member.UserID, entity.NotificationMessage,
			fmt.Sprintf("%s: %s", sender.Handle, messagePreview(content)), req.ConversationID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot send message notification: %v", err)
		}

		d.fanout.NotifyMessage(ctx, member.UserID, clientMessage)
	}

	return &model.SendMessageResponse{Message: clientMessage}, nil
}

func (d *chatDomain) GetMessages(
	ctx context.Context, req *model.GetMessagesRequest,
) (*model.GetMessagesResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if err := d.requireMembership(ctx, req.ConversationID, userID); err != nil {
		return nil, err
	}

	offset, limit := normalizePagination(req.Offset, req.Limit)
	messages, err := d.chatRepo.GetMessages(ctx, req.ConversationID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get messages: %v", err)
		return nil, errorx.Unknown
	}

	clientMessages := []model.Message{}
	for i := range messages {
		clientMessages = append(clientMessages, model.ConvertMessage(&messages[i]))
	}

	return &model.GetMessagesResponse{Messages: clientMessages}, nil
}

func (d *chatDomain) MarkConversationRead(
	ctx context.Context, req *model.MarkConversationReadRequest,
) (*model.MarkConversationReadResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if err := d.requireMembership(ctx, req.ConversationID, userID); err != nil {
		return nil, err
	}

	if err := d.chatRepo.MarkRead(ctx, req.ConversationID, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark conversation read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkConversationReadResponse{}, nil
}

func (d *chatDomain) GetMyConversations(
	ctx context.Context, req *model.GetMyConversationsRequest,
) (*model.GetMyConversationsResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	conversations, err := d.chatRepo.GetConversationsByUser(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get conversations: %v", err)
		return nil, errorx.Unknown
	}

	clientConversations := []model.Conversation{}
	for i := range conversations {
		members, err := d.conversationMembers(ctx, conversations[i].ID)
		if err != nil {
			return nil, err
		}

		conversation := model.ConvertConversation(&conversations[i], members)

		last, err := d.chatRepo.GetLastMessage(ctx, conversations[i].ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get last message: %v", err)
			return nil, errorx.Unknown
		}

		if last != nil {
			lastMessage := model.ConvertMessage(last)
			conversation.LastMessage = &lastMessage
		}

		clientConversations = append(clientConversations, conversation)
	}

	return &model.GetMyConversationsResponse{Conversations: clientConversations}, nil
}

func (d *chatDomain) requireMembership(ctx context.Context, conversationID, userID string) error {
	if conversationID == "" {
		return errorx.New(errorx.BadRequest, "Require conversation id")
	}

	if _, err := d.chatRepo.GetConversation(ctx, conversationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found conversation")
		}

		xcontext.Logger(ctx).Errorf("Cannot get conversation: %v", err)
		return errorx.Unknown
	}

	isMember, err := d.chatRepo.IsMember(ctx, conversationID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check membership: %v", err)
		return errorx.Unknown
	}

	if !isMember {
		return errorx.New(errorx.PermissionDenied, "You are not in this conversation")
	}

	return nil
}

func (d *chatDomain) conversationMembers(
	ctx context.Context, conversationID string,
) ([]entity.User, error) {
	members, err := d.chatRepo.GetMembers(ctx, conversationID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get members: %v", err)
		return nil, errorx.Unknown
	}

	ids := []string{}
	for _, member := range members {
		ids = append(ids, member.UserID)
	}

	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get member users: %v", err)
		return nil, errorx.Unknown
	}

	return users, nil
}

func messagePreview(content string) string {
	if utf8.RuneCountInString(content) <= messagePreviewLength {
		return content
	}

	runes := []rune(content)
	return string(runes[:messagePreviewLength]) + "..."
}
