package main

import (
	"github.com/jobtrackr/backend/internal/domain/cron"
	"github.com/jobtrackr/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(cliCtx *cli.Context) error {
	s.loadConfig(cliCtx)
	s.db = s.newDatabase()
	s.ctx = xcontext.WithDB(s.ctx, s.db)
	s.migrateDB()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadRepos()
	s.loadEngine()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewDailyRolloverCronJob(s.ctx, s.engine, s.applicationRepo))
	cronJobManager.Start(s.ctx)

	return nil
}
