package main

import (
	"net/http"

	"github.com/sosyal-lab/backend/internal/domain/notification/proxy"
	"github.com/sosyal-lab/backend/internal/middleware"
	"github.com/sosyal-lab/backend/pkg/kafka"
	"github.com/sosyal-lab/backend/pkg/logger"
	"github.com/sosyal-lab/backend/pkg/router"
	"github.com/sosyal-lab/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startProxy(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadAuth()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedis()
	s.loadRepos()

	cfg := xcontext.Configs(s.ctx)
	notificationProxy := proxy.NewProxyServer(s.ctx, s.notificationRepo, s.redisClient)

	subscriber, err := kafka.NewSubscriber(
		"proxy",
		[]string{cfg.Kafka.Addr},
		[]string{cfg.Kafka.NotificationTopic},
		notificationProxy.Router().Route,
		logger.NewLogger(),
	)
	if err != nil {
		panic(err)
	}
	s.subscriber = subscriber
	go s.subscriber.Subscribe(s.ctx)

	defaultRouter := router.New(s.ctx)
	defaultRouter.AddCloser(middleware.Logger())
	defaultRouter.Before(middleware.NewAuthVerifier().Middleware())
	router.Websocket(defaultRouter, "/notification", notificationProxy.ServeProxy)

	xcontext.Logger(s.ctx).Infof("Server start in port: %s", cfg.WsProxyServer.Port)
	httpSrv := &http.Server{
		Addr:    cfg.WsProxyServer.Address(),
		Handler: defaultRouter.Handler(cfg.WsProxyServer),
	}
	if err := httpSrv.ListenAndServe(); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}
