package domain

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/sosyal-lab/backend/internal/common"
	"github.com/sosyal-lab/backend/internal/domain/search"
	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/crypto"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"github.com/sosyal-lab/backend/pkg/xredis"
	"gorm.io/gorm"
)

const (
	maxLoginAttempts   = 5
	securityLogMaxSize = 1000
)

var handleRegexp = regexp.MustCompile(`^[a-z0-9_]{3,32}$`)

type AuthDomain interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context, req *model.LogoutRequest) (*model.LogoutResponse, error)
}

type authDomain struct {
	userRepo     repository.UserRepository
	redisClient  xredis.Client
	searchCaller search.Caller
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	redisClient xredis.Client,
	searchCaller search.Caller,
) *authDomain {
	return &authDomain{
		userRepo:     userRepo,
		redisClient:  redisClient,
		searchCaller: searchCaller,
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	if !handleRegexp.MatchString(req.Handle) {
		return nil, errorx.New(errorx.BadRequest,
			"Handle must be 3-32 lowercase letters, digits, or underscores")
	}

	if len(req.Password) < 8 {
		return nil, errorx.New(errorx.BadRequest, "Password must be at least 8 characters")
	}

	_, err := d.userRepo.GetByHandle(ctx, req.Handle)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This handle is already taken")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing handle: %v", err)
		return nil, errorx.Unknown
	}

	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		Handle:       req.Handle,
		PasswordHash: hashed,
		Role:         entity.UserRole,
		Level:        1,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	if d.searchCaller != nil {
		err := d.searchCaller.Index(search.UserDoc, user.ID, search.UserData{Handle: user.Handle})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot index user: %v", err)
		}
	}

	d.logSecurityEvent(ctx, user.ID, "register")

	return &model.RegisterResponse{User: model.ConvertUser(user)}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByHandle(ctx, req.Handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid handle or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.LoginAttempts >= maxLoginAttempts {
		d.logSecurityEvent(ctx, user.ID, "login_locked")
		return nil, errorx.New(errorx.TooManyRequests,
			"Too many failed attempts, account is temporarily locked")
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		if err := d.userRepo.IncreaseLoginAttempts(ctx, user.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot record failed attempt: %v", err)
		}

		d.logSecurityEvent(ctx, user.ID, "login_failed")
		return nil, errorx.New(errorx.Unauthenticated, "Invalid handle or password")
	}

	if err := d.userRepo.ResetLoginAttempts(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reset login attempts: %v", err)
	}

	if err := d.userRepo.UpdateLastActivity(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update last activity: %v", err)
	}

	token, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:     user.ID,
		Handle: user.Handle,
		Role:   user.Role,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	d.logSecurityEvent(ctx, user.ID, "login")

	return &model.LoginResponse{
		User:        model.ConvertUser(user),
		AccessToken: token,
	}, nil
}

func (d *authDomain) Logout(
	ctx context.Context, req *model.LogoutRequest,
) (*model.LogoutResponse, error) {
	d.logSecurityEvent(ctx, xcontext.RequestUserID(ctx), "logout")
	return &model.LogoutResponse{}, nil
}

// logSecurityEvent appends to a capped redis list, so the log never grows
// unbounded. Failures are logged and swallowed, auth must not depend on
// redis being up.
func (d *authDomain) logSecurityEvent(ctx context.Context, userID, event string) {
	if d.redisClient == nil {
		return
	}

	b, err := json.Marshal(map[string]string{
		"user_id": userID,
		"event":   event,
		"time":    time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return
	}

	err = d.redisClient.LPushTrim(ctx, common.RedisKeySecurityLog(), string(b), securityLogMaxSize)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot write security log: %v", err)
	}
}
