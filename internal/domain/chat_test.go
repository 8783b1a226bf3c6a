package domain

import (
	"strings"
	"testing"

	"github.com/sosyal-lab/backend/internal/domain/notification"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/testutil"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestChatDomain() *chatDomain {
	fanout := notification.NewFanout(
		repository.NewNotificationRepository(), &testutil.MockPublisher{})

	return NewChatDomain(
		repository.NewChatRepository(),
		repository.NewUserRepository(),
		fanout,
	)
}

func Test_chatDomain_StartConversation(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertUsers(ctx)

	domain := newTestChatDomain()
	resp, err := domain.StartConversation(ctx, &model.StartConversationRequest{
		Handle: testutil.User2.Handle,
	})
	require.NoError(t, err)
	require.Len(t, resp.Conversation.Members, 2)
	require.False(t, resp.Conversation.IsGroup)

	// Starting the same conversation again returns the existing one, from
	// either side.
	again, err := domain.StartConversation(ctx, &model.StartConversationRequest{
		Handle: testutil.User2.Handle,
	})
	require.NoError(t, err)
	require.Equal(t, resp.Conversation.ID, again.Conversation.ID)

	otherCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	reverse, err := domain.StartConversation(otherCtx, &model.StartConversationRequest{
		Handle: testutil.User1.Handle,
	})
	require.NoError(t, err)
	require.Equal(t, resp.Conversation.ID, reverse.Conversation.ID)
}

func Test_chatDomain_StartConversation_Self(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertUsers(ctx)

	domain := newTestChatDomain()
	_, err := domain.StartConversation(ctx, &model.StartConversationRequest{
		Handle: testutil.User1.Handle,
	})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_chatDomain_SendMessage(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertUsers(ctx)

	domain := newTestChatDomain()
	conv, err := domain.StartConversation(ctx, &model.StartConversationRequest{
		Handle: testutil.User2.Handle,
	})
	require.NoError(t, err)

	resp, err := domain.SendMessage(ctx, &model.SendMessageRequest{
		ConversationID: conv.Conversation.ID,
		Content:        "Selam, nasılsın?",
	})
	require.NoError(t, err)
	require.Equal(t, "Selam, nasılsın?", resp.Message.Content)
	require.Equal(t, testutil.User1.ID, resp.Message.SenderID)

	// The other member got a notification, the sender did not.
	notificationRepo := repository.NewNotificationRepository()
	unread, err := notificationRepo.CountUnread(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)

	unread, err = notificationRepo.CountUnread(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), unread)
}

func Test_chatDomain_SendMessage_NotMember(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertUsers(ctx)

	domain := newTestChatDomain()
	conv, err := domain.StartConversation(ctx, &model.StartConversationRequest{
		Handle: testutil.User2.Handle,
	})
	require.NoError(t, err)

	outsiderCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	_, err = domain.SendMessage(outsiderCtx, &model.SendMessageRequest{
		ConversationID: conv.Conversation.ID,
		Content:        "merhaba",
	})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func Test_chatDomain_SendMessage_NotFoundConversation(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertUsers(ctx)

	domain := newTestChatDomain()
	_, err := domain.SendMessage(ctx, &model.SendMessageRequest{
		ConversationID: "does-not-exist",
		Content:        "merhaba",
	})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_chatDomain_GetMessagesAndMarkRead(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertUsers(ctx)

	domain := newTestChatDomain()
	conv, err := domain.StartConversation(ctx, &model.StartConversationRequest{
		Handle: testutil.User2.Handle,
	})
	require.NoError(t, err)

	for _, content := range []string{"bir", "iki", "üç"} {
		_, err := domain.SendMessage(ctx, &model.SendMessageRequest{
			ConversationID: conv.Conversation.ID,
			Content:        content,
		})
		require.NoError(t, err)
	}

	otherCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	resp, err := domain.GetMessages(otherCtx, &model.GetMessagesRequest{
		ConversationID: conv.Conversation.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 3)

	// Newest first.
	require.Equal(t, "üç", resp.Messages[0].Content)
	require.Equal(t, "bir", resp.Messages[2].Content)

	chatRepo := repository.NewChatRepository()
	unread, err := chatRepo.CountUnread(ctx, conv.Conversation.ID, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), unread)

	_, err = domain.MarkConversationRead(otherCtx, &model.MarkConversationReadRequest{
		ConversationID: conv.Conversation.ID,
	})
	require.NoError(t, err)

	unread, err = chatRepo.CountUnread(ctx, conv.Conversation.ID, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), unread)
}

func Test_chatDomain_GetMyConversations(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertUsers(ctx)

	domain := newTestChatDomain()
	started, err := domain.StartConversation(ctx, &model.StartConversationRequest{
		Handle: testutil.User2.Handle,
	})
	require.NoError(t, err)

	_, err = domain.StartConversation(ctx, &model.StartConversationRequest{
		Handle: testutil.Admin.Handle,
	})
	require.NoError(t, err)

	_, err = domain.SendMessage(ctx, &model.SendMessageRequest{
		ConversationID: started.Conversation.ID,
		Content:        "görüşürüz",
	})
	require.NoError(t, err)

	resp, err := domain.GetMyConversations(ctx, &model.GetMyConversationsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Conversations, 2)

	// The conversation with a message carries it as the last message.
	var withMessage *model.Conversation
	for i := range resp.Conversations {
		if resp.Conversations[i].ID == started.Conversation.ID {
			withMessage = &resp.Conversations[i]
		} else {
			require.Nil(t, resp.Conversations[i].LastMessage)
		}
	}
	require.NotNil(t, withMessage)
	require.NotNil(t, withMessage.LastMessage)
	require.Equal(t, "görüşürüz", withMessage.LastMessage.Content)
	require.Equal(t, testutil.User1.ID, withMessage.LastMessage.SenderID)

	// The admin only sees their own conversation.
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	adminResp, err := domain.GetMyConversations(adminCtx, &model.GetMyConversationsRequest{})
	require.NoError(t, err)
	require.Len(t, adminResp.Conversations, 1)
}

func Test_messagePreview(t *testing.T) {
	require.Equal(t, "kısa mesaj", messagePreview("kısa mesaj"))

	long := strings.Repeat("a", messagePreviewLength+10)
	preview := messagePreview(long)
	require.Equal(t, strings.Repeat("a", messagePreviewLength)+"...", preview)
}
