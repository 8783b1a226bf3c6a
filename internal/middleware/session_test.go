package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/pkg/testutil"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_HandleSaveSession(t *testing.T) {
	ctx := testutil.MockContext()
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte("secret")))
	ctx = xcontext.WithHTTPRequest(ctx, httptest.NewRequest("POST", "/login", nil))
	w := httptest.NewRecorder()
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithResponse(ctx)

	xcontext.SetResponse(ctx, &model.LoginResponse{
		User: model.User{ID: "user1", Handle: "ayse"},
	})

	newCtx, err := HandleSaveSession()(ctx)
	require.NoError(t, err)
	require.Nil(t, newCtx)

	sessionName := xcontext.Configs(ctx).Session.Name
	var found bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessionName {
			found = true
			require.NotEmpty(t, cookie.Value)
		}
	}
	require.True(t, found)
}

func Test_HandleSaveSession_NotSessionResponse(t *testing.T) {
	ctx := testutil.MockContext()
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte("secret")))
	ctx = xcontext.WithHTTPRequest(ctx, httptest.NewRequest("POST", "/logout", nil))
	w := httptest.NewRecorder()
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithResponse(ctx)

	xcontext.SetResponse(ctx, &model.LogoutResponse{})

	_, err := HandleSaveSession()(ctx)
	require.NoError(t, err)
	require.Empty(t, w.Result().Cookies())
}
