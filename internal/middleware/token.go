package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/sosyal-lab/backend/pkg/router"
	"github.com/sosyal-lab/backend/pkg/xcontext"
)

type AccessTokenResponse interface {
	AccessTokenInfo() string
}

// HandleSetAccessToken mirrors the token of a login response into a cookie,
// so browser clients get authenticated without touching headers.
func HandleSetAccessToken() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		tokenResp, ok := xcontext.Response(ctx).(AccessTokenResponse)
		if ok {
			cfg := xcontext.Configs(ctx)
			http.SetCookie(xcontext.HTTPWriter(ctx), &http.Cookie{
				Name:     cfg.Auth.AccessToken.Name,
				Value:    tokenResp.AccessTokenInfo(),
				Path:     "/",
				Expires:  time.Now().Add(cfg.Auth.AccessToken.Expiration),
				Secure:   true,
				HttpOnly: false,
			})
		}

		return nil, nil
	}
}
