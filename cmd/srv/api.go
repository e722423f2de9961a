package main

import (
	"fmt"
	"net/http"

	"github.com/jobtrackr/backend/internal/middleware"
	"github.com/jobtrackr/backend/pkg/router"
	"github.com/jobtrackr/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cliCtx *cli.Context) error {
	s.loadConfig(cliCtx)
	s.db = s.newDatabase()
	s.ctx = xcontext.WithDB(s.ctx, s.db)
	s.migrateDB()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadRepos()
	s.loadEngine()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", s.configs.ApiServer.Host, s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on port %s", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)
	s.router.Before(middleware.WithRequestUser())
	s.router.AddCloser(middleware.Logger())

	// Public API.
	router.GET(s.router, "/getCatalog", s.achievementDomain.GetCatalog)
	router.GET(s.router, "/getLeaderBoard", s.progressionDomain.GetLeaderBoard)

	// These following APIs need an authenticated user.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		router.GET(authRouter, "/getMyAchievements", s.achievementDomain.GetMyUnlocked)
		router.GET(authRouter, "/getProgression", s.progressionDomain.GetProgression)
		router.GET(authRouter, "/getStreak", s.progressionDomain.GetStreak)
		router.POST(authRouter, "/triggerRecompute", s.achievementDomain.TriggerRecompute)
		router.POST(authRouter, "/repairLedger", s.achievementDomain.RepairLedger)
	}
}
