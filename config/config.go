package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	Database  DatabaseConfigs `toml:"database"`
	ApiServer ServerConfigs   `toml:"api_server"`
	Engine    EngineConfigs   `toml:"engine"`
	Redis     RedisConfigs    `toml:"redis"`
	Kafka     KafkaConfigs    `toml:"kafka"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

// EngineConfigs tunes the achievement engine.
type EngineConfigs struct {
	// Timezone is the reference timezone in which calendar days are
	// determined for streaks and time-of-day checks.
	Timezone string `toml:"timezone"`

	// EarlyBirdHour and NightOwlHour are the local-hour thresholds of the
	// time-of-day achievements.
	EarlyBirdHour int `toml:"early_bird_hour"`
	NightOwlHour  int `toml:"night_owl_hour"`

	// ActivityTopic is the kafka topic carrying application/goal activity
	// events. UnlockTopic receives unlock events for the notification
	// dispatcher.
	ActivityTopic string `toml:"activity_topic"`
	UnlockTopic   string `toml:"unlock_topic"`

	// RolloverLookback bounds which users the daily rollover re-evaluates:
	// only those with activity in this window.
	RolloverLookback time.Duration `toml:"rollover_lookback"`

	// ProgressionCacheTTL is the redis ttl of the last computed progression.
	ProgressionCacheTTL time.Duration `toml:"progression_cache_ttl"`
}

func (e *EngineConfigs) Location() *time.Location {
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr string `toml:"addr"`
}

// Load reads configurations from the TOML file at path, then overrides the
// connection settings with environment variables when they are set. An empty
// path loads from environment only.
func Load(path string) (Configs, error) {
	cfg := Configs{
		Engine: EngineConfigs{
			Timezone:            "UTC",
			EarlyBirdHour:       8,
			NightOwlHour:        22,
			ActivityTopic:       "activity-events",
			UnlockTopic:         "unlock-events",
			RolloverLookback:    45 * 24 * time.Hour,
			ProgressionCacheTTL: 10 * time.Minute,
		},
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	overrideString(&cfg.Env, "ENV")
	overrideString(&cfg.Database.Host, "MYSQL_HOST")
	overrideString(&cfg.Database.Port, "MYSQL_PORT")
	overrideString(&cfg.Database.Database, "MYSQL_DATABASE")
	overrideString(&cfg.Database.User, "MYSQL_USER")
	overrideString(&cfg.Database.Password, "MYSQL_PASSWORD")
	overrideString(&cfg.ApiServer.Host, "API_HOST")
	overrideString(&cfg.ApiServer.Port, "API_PORT")
	overrideString(&cfg.Redis.Addr, "REDIS_ADDR")
	overrideString(&cfg.Kafka.Addr, "KAFKA_ADDR")

	return cfg, nil
}

func overrideString(target *string, env string) {
	if value, ok := os.LookupEnv(env); ok {
		*target = value
	}
}
