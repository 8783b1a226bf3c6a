package main

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/sessions"
	"github.com/sosyal-lab/backend/config"
	"github.com/sosyal-lab/backend/internal/domain"
	"github.com/sosyal-lab/backend/internal/domain/gamification"
	"github.com/sosyal-lab/backend/internal/domain/notification"
	"github.com/sosyal-lab/backend/internal/domain/search"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/migration"
	"github.com/sosyal-lab/backend/pkg/authenticator"
	"github.com/sosyal-lab/backend/pkg/kafka"
	"github.com/sosyal-lab/backend/pkg/logger"
	"github.com/sosyal-lab/backend/pkg/pubsub"
	"github.com/sosyal-lab/backend/pkg/storage"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"github.com/sosyal-lab/backend/pkg/xredis"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context

	userRepo         repository.UserRepository
	followerRepo     repository.FollowerRepository
	postRepo         repository.PostRepository
	postLikeRepo     repository.PostLikeRepository
	commentRepo      repository.CommentRepository
	achievementRepo  repository.AchievementRepository
	notificationRepo repository.NotificationRepository
	chatRepo         repository.ChatRepository

	authDomain         domain.AuthDomain
	userDomain         domain.UserDomain
	followerDomain     domain.FollowerDomain
	postDomain         domain.PostDomain
	notificationDomain domain.NotificationDomain
	chatDomain         domain.ChatDomain
	statisticDomain    domain.StatisticDomain
	searchDomain       domain.SearchDomain
	fileDomain         domain.FileDomain

	fanout *notification.Fanout
	engine *gamification.Engine

	redisClient  xredis.Client
	publisher    pubsub.Publisher
	subscriber   pubsub.Subscriber
	searchCaller search.Caller
	storage      storage.Storage
}

func (s *srv) loadConfig() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
}

func (s *srv) loadLogger() {
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger())
}

func (s *srv) loadAuth() {
	cfg := xcontext.Configs(s.ctx)
	s.ctx = xcontext.WithTokenEngine(s.ctx,
		authenticator.NewTokenEngine[model.AccessToken](cfg.Auth))
	s.ctx = xcontext.WithSessionStore(s.ctx,
		sessions.NewCookieStore([]byte(cfg.Session.Secret)))

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx)
	db, err := gorm.Open(mysql.Open(cfg.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := migration.AutoMigrate(s.ctx); err != nil {
		panic(err)
	}

	if err := migration.SeedAchievements(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedis() {
	client, err := xredis.NewClient(s.ctx, xcontext.Configs(s.ctx).Redis)
	if err != nil {
		panic(err)
	}

	s.redisClient = client
}

func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx)
	publisher, err := kafka.NewPublisher("api", []string{cfg.Kafka.Addr})
	if err != nil {
		panic(err)
	}

	s.publisher = publisher
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
}

func (s *srv) loadSearch() {
	s.searchCaller = search.NewBleveIndex(s.ctx)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.followerRepo = repository.NewFollowerRepository()
	s.postRepo = repository.NewPostRepository()
	s.postLikeRepo = repository.NewPostLikeRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.achievementRepo = repository.NewAchievementRepository()
	s.notificationRepo = repository.NewNotificationRepository()
	s.chatRepo = repository.NewChatRepository()
}

func (s *srv) loadDomains() {
	s.fanout = notification.NewFanout(s.notificationRepo, s.publisher)
	s.engine = gamification.NewEngine(
		s.userRepo, s.postRepo, s.followerRepo, s.achievementRepo, s.fanout, s.redisClient)

	s.authDomain = domain.NewAuthDomain(s.userRepo, s.redisClient, s.searchCaller)
	s.userDomain = domain.NewUserDomain(
		s.userRepo, s.followerRepo, s.postRepo, s.achievementRepo, s.searchCaller)
	s.followerDomain = domain.NewFollowerDomain(
		s.userRepo, s.followerRepo, s.engine, s.fanout)
	s.postDomain = domain.NewPostDomain(
		s.postRepo, s.postLikeRepo, s.commentRepo, s.userRepo, s.followerRepo,
		s.engine, s.fanout, s.searchCaller, s.redisClient)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo)
	s.chatDomain = domain.NewChatDomain(s.chatRepo, s.userRepo, s.fanout)
	s.statisticDomain = domain.NewStatisticDomain(
		s.userRepo, s.postRepo, s.commentRepo, s.followerRepo, s.chatRepo, s.redisClient)
	s.searchDomain = domain.NewSearchDomain(s.postRepo, s.userRepo, s.searchCaller)
	s.fileDomain = domain.NewFileDomain(s.storage, s.userRepo)
}
