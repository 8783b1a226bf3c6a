package main

import (
	"net/http"

	"github.com/sosyal-lab/backend/internal/middleware"
	"github.com/sosyal-lab/backend/pkg/router"
	"github.com/sosyal-lab/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadAuth()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedis()
	s.loadPublisher()
	s.loadStorage()
	s.loadSearch()
	s.loadRepos()
	s.loadDomains()

	cfg := xcontext.Configs(s.ctx)
	defaultRouter := router.New(s.ctx)
	defaultRouter.AddCloser(middleware.Logger())

	// Auth API.
	authRouter := defaultRouter.Branch()
	authRouter.After(middleware.HandleSetAccessToken())
	authRouter.After(middleware.HandleSaveSession())
	{
		router.POST(authRouter, "/register", s.authDomain.Register)
		router.POST(authRouter, "/login", s.authDomain.Login)
	}

	// These following APIs need authentication.
	authVerifier := middleware.NewAuthVerifier()
	needAuthRouter := defaultRouter.Branch()
	needAuthRouter.Before(authVerifier.Middleware())
	{
		router.POST(needAuthRouter, "/logout", s.authDomain.Logout)

		// User API.
		router.GET(needAuthRouter, "/getMe", s.userDomain.GetMe)
		router.POST(needAuthRouter, "/updateProfile", s.userDomain.UpdateProfile)
		router.GET(needAuthRouter, "/getMyAchievements", s.userDomain.GetMyAchievements)

		// Follow API.
		router.POST(needAuthRouter, "/follow", s.followerDomain.Follow)
		router.POST(needAuthRouter, "/unfollow", s.followerDomain.Unfollow)

		// Post API.
		router.POST(needAuthRouter, "/createPost", s.postDomain.Create)
		router.POST(needAuthRouter, "/likePost", s.postDomain.Like)
		router.POST(needAuthRouter, "/unlikePost", s.postDomain.Unlike)
		router.POST(needAuthRouter, "/addComment", s.postDomain.AddComment)
		router.GET(needAuthRouter, "/getFeed", s.postDomain.GetFeed)

		// Notification API.
		router.GET(needAuthRouter, "/getMyNotifications", s.notificationDomain.GetMy)
		router.POST(needAuthRouter, "/markNotificationRead", s.notificationDomain.MarkRead)
		router.POST(needAuthRouter, "/markAllNotificationsRead", s.notificationDomain.MarkAllRead)

		// Chat API.
		router.POST(needAuthRouter, "/startConversation", s.chatDomain.StartConversation)
		router.POST(needAuthRouter, "/sendMessage", s.chatDomain.SendMessage)
		router.GET(needAuthRouter, "/getMessages", s.chatDomain.GetMessages)
		router.POST(needAuthRouter, "/markConversationRead", s.chatDomain.MarkConversationRead)
		router.GET(needAuthRouter, "/getMyConversations", s.chatDomain.GetMyConversations)

		// Image API.
		router.POST(needAuthRouter, "/uploadImage", s.fileDomain.UploadImage)
		router.POST(needAuthRouter, "/uploadAvatar", s.fileDomain.UploadAvatar)
	}

	// Public APIs, they see the user id when a token is sent.
	optionalAuthRouter := defaultRouter.Branch()
	optionalAuthRouter.Before(middleware.NewAuthVerifier().WithOptional().Middleware())
	{
		router.GET(optionalAuthRouter, "/getUser", s.userDomain.GetUser)
		router.GET(optionalAuthRouter, "/getPost", s.postDomain.Get)
		router.GET(optionalAuthRouter, "/getUserPosts", s.postDomain.GetUserPosts)
		router.GET(optionalAuthRouter, "/getFollowers", s.followerDomain.GetFollowers)
		router.GET(optionalAuthRouter, "/getFollowing", s.followerDomain.GetFollowing)
		router.GET(optionalAuthRouter, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
		router.GET(optionalAuthRouter, "/getSiteStats", s.statisticDomain.GetSiteStats)
		router.GET(optionalAuthRouter, "/search", s.searchDomain.Search)
	}

	// Admin API.
	adminRouter := defaultRouter.Branch()
	adminRouter.Before(authVerifier.Middleware())
	adminRouter.Before(middleware.NewOnlyAdmin(s.userRepo).Middleware())
	{
		router.GET(adminRouter, "/adminStats", s.statisticDomain.AdminStats)
	}

	xcontext.Logger(s.ctx).Infof("Server start in port: %s", cfg.ApiServer.Port)
	httpSrv := &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: defaultRouter.Handler(cfg.ApiServer),
	}
	if err := httpSrv.ListenAndServe(); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}
