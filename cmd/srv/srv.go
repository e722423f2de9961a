package main

import (
	"context"
	"net/http"

	"github.com/jobtrackr/backend/config"
	"github.com/jobtrackr/backend/internal/domain"
	"github.com/jobtrackr/backend/internal/domain/achievement"
	"github.com/jobtrackr/backend/internal/repository"
	"github.com/jobtrackr/backend/migration"
	"github.com/jobtrackr/backend/pkg/kafka"
	"github.com/jobtrackr/backend/pkg/logger"
	"github.com/jobtrackr/backend/pkg/pubsub"
	"github.com/jobtrackr/backend/pkg/router"
	"github.com/jobtrackr/backend/pkg/xcontext"
	"github.com/jobtrackr/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB

	applicationRepo repository.ApplicationRepository
	goalRepo        repository.GoalRepository
	unlockedRepo    repository.UnlockedAchievementRepository
	progressionRepo repository.ProgressionRepository
	streakRepo      repository.StreakRepository

	catalog    *achievement.Catalog
	collector  *achievement.Collector
	aggregator *achievement.Aggregator
	engine     *achievement.Engine

	achievementDomain domain.AchievementDomain
	progressionDomain domain.ProgressionDomain

	publisher   pubsub.Publisher
	redisClient xredis.Client

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cliCtx *cli.Context) {
	cfg, err := config.Load(cliCtx.String("config"))
	if err != nil {
		panic(err)
	}

	s.configs = cfg
	s.logger = logger.NewLogger()
	s.ctx = xcontext.WithConfigs(context.Background(), s.configs)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) newDatabase() *gorm.DB {
	db, err := gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := migration.Migrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.applicationRepo = repository.NewApplicationRepository()
	s.goalRepo = repository.NewGoalRepository()
	s.unlockedRepo = repository.NewUnlockedAchievementRepository()
	s.progressionRepo = repository.NewProgressionRepository()
	s.streakRepo = repository.NewStreakRepository()
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	var err error
	s.publisher, err = kafka.NewPublisher("engine", []string{s.configs.Kafka.Addr})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadEngine() {
	s.catalog = achievement.DefaultCatalog()
	s.collector = achievement.NewCollector(s.applicationRepo, s.goalRepo)
	s.aggregator = achievement.NewAggregator(
		s.catalog, s.unlockedRepo, s.progressionRepo, s.redisClient)
	s.engine = achievement.NewEngine(
		s.collector, s.catalog, s.aggregator, s.unlockedRepo, s.streakRepo, s.publisher)
}

func (s *srv) loadDomains() {
	s.achievementDomain = domain.NewAchievementDomain(
		s.catalog, s.engine, s.aggregator, s.unlockedRepo)
	s.progressionDomain = domain.NewProgressionDomain(
		s.aggregator, s.progressionRepo, s.streakRepo)
}
