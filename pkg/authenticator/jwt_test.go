package authenticator

import (
	"testing"
	"time"

	"github.com/sosyal-lab/backend/config"
	"github.com/stretchr/testify/require"
)

type tokenObj struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
}

func Test_jwtTokenEngine_GenerateVerify(t *testing.T) {
	engine := NewTokenEngine[tokenObj](config.AuthConfigs{
		TokenSecret: "secret",
		AccessToken: config.TokenConfigs{Expiration: time.Minute},
	})

	token, err := engine.Generate("user1", tokenObj{ID: "user1", Handle: "ali"})
	require.NoError(t, err)

	obj, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user1", obj.ID)
	require.Equal(t, "ali", obj.Handle)
}

func Test_jwtTokenEngine_VerifyWrongSecret(t *testing.T) {
	engine := NewTokenEngine[tokenObj](config.AuthConfigs{
		TokenSecret: "secret",
		AccessToken: config.TokenConfigs{Expiration: time.Minute},
	})

	other := NewTokenEngine[tokenObj](config.AuthConfigs{
		TokenSecret: "another-secret",
		AccessToken: config.TokenConfigs{Expiration: time.Minute},
	})

	token, err := engine.Generate("user1", tokenObj{ID: "user1"})
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
}

func Test_jwtTokenEngine_Expired(t *testing.T) {
	engine := NewTokenEngine[tokenObj](config.AuthConfigs{
		TokenSecret: "secret",
		AccessToken: config.TokenConfigs{Expiration: -time.Minute},
	})

	token, err := engine.Generate("user1", tokenObj{ID: "user1"})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}
