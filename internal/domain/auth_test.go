package domain

import (
	"testing"

	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_authDomain_RegisterAndLogin(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewAuthDomain(
		repository.NewUserRepository(), &testutil.MockRedisClient{}, &testutil.MockSearchCaller{})

	resp, err := domain.Register(ctx, &model.RegisterRequest{
		Handle:   "ali_veli",
		Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, "ali_veli", resp.User.Handle)
	require.Equal(t, 1, resp.User.Level)

	loginResp, err := domain.Login(ctx, &model.LoginRequest{
		Handle:   "ali_veli",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, loginResp.AccessToken)
	require.Equal(t, resp.User.ID, loginResp.User.ID)
}

func Test_authDomain_Register_InvalidHandle(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewAuthDomain(
		repository.NewUserRepository(), &testutil.MockRedisClient{}, &testutil.MockSearchCaller{})

	for _, handle := range []string{"", "ab", "Ali", "ali veli", "ali-veli"} {
		_, err := domain.Register(ctx, &model.RegisterRequest{
			Handle:   handle,
			Password: "password123",
		})

		var errx errorx.Error
		require.ErrorAs(t, err, &errx)
		require.Equal(t, errorx.BadRequest, errx.Code)
	}
}

func Test_authDomain_Register_DuplicatedHandle(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	domain := NewAuthDomain(
		repository.NewUserRepository(), &testutil.MockRedisClient{}, &testutil.MockSearchCaller{})

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Handle:   testutil.User1.Handle,
		Password: "password123",
	})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_authDomain_Login_WrongPassword(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewAuthDomain(
		repository.NewUserRepository(), &testutil.MockRedisClient{}, &testutil.MockSearchCaller{})

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Handle:   "ali_veli",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = domain.Login(ctx, &model.LoginRequest{
		Handle:   "ali_veli",
		Password: "wrong-password",
	})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)

	// An unknown handle fails with the same message, so the response does
	// not leak which handles exist.
	_, err = domain.Login(ctx, &model.LoginRequest{
		Handle:   "no_such_user",
		Password: "password123",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}

func Test_authDomain_Login_LockedAfterTooManyAttempts(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewAuthDomain(
		repository.NewUserRepository(), &testutil.MockRedisClient{}, &testutil.MockSearchCaller{})

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Handle:   "ali_veli",
		Password: "password123",
	})
	require.NoError(t, err)

	for i := 0; i < maxLoginAttempts; i++ {
		_, err := domain.Login(ctx, &model.LoginRequest{
			Handle:   "ali_veli",
			Password: "wrong-password",
		})
		require.Error(t, err)
	}

	// Even the correct password is refused once the account is locked.
	_, err = domain.Login(ctx, &model.LoginRequest{
		Handle:   "ali_veli",
		Password: "password123",
	})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.TooManyRequests, errx.Code)
}

func Test_authDomain_Login_ResetsAttemptsOnSuccess(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()
	domain := NewAuthDomain(userRepo, &testutil.MockRedisClient{}, &testutil.MockSearchCaller{})

	resp, err := domain.Register(ctx, &model.RegisterRequest{
		Handle:   "ali_veli",
		Password: "password123",
	})
	require.NoError(t, err)

	for i := 0; i < maxLoginAttempts-1; i++ {
		_, err := domain.Login(ctx, &model.LoginRequest{
			Handle:   "ali_veli",
			Password: "wrong-password",
		})
		require.Error(t, err)
	}

	_, err = domain.Login(ctx, &model.LoginRequest{
		Handle:   "ali_veli",
		Password: "password123",
	})
	require.NoError(t, err)

	user, err := userRepo.GetByID(ctx, resp.User.ID)
	require.NoError(t, err)
	require.Equal(t, 0, user.LoginAttempts)
}
