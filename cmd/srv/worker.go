package main

import (
	"github.com/jobtrackr/backend/internal/domain/achievement"
	"github.com/jobtrackr/backend/pkg/kafka"
	"github.com/jobtrackr/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startWorker(cliCtx *cli.Context) error {
	s.loadConfig(cliCtx)
	s.db = s.newDatabase()
	s.ctx = xcontext.WithDB(s.ctx, s.db)
	s.migrateDB()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadRepos()
	s.loadEngine()

	handler := achievement.NewActivitySubscribeHandler(s.engine)
	subscriber, err := kafka.NewSubscriber(
		"achievement-engine",
		[]string{s.configs.Kafka.Addr},
		[]string{s.configs.Engine.ActivityTopic},
		handler.Subscribe,
	)
	if err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Start worker successfully")
	subscriber.Subscribe(s.ctx)
	<-s.ctx.Done()

	return nil
}
