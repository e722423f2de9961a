package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "JobTrackr"
	app.Usage = "Achievement and progression engine"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path of the configuration file",
		},
	}
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Category:    "Api",
			Description: `Serves the catalog, progression, streak, and leaderboard apis.`,
		},
		{
			Action:      server.startWorker,
			Name:        "worker",
			Usage:       "Start the activity worker",
			Category:    "Worker",
			Description: `Consumes activity events and runs recomputation cycles.`,
		},
		{
			Action:      server.startCron,
			Name:        "cron",
			Usage:       "Start the cron service",
			Category:    "Worker",
			Description: `Runs the daily rollover over recently active users.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database to the latest version",
			Category:    "Database",
		},
	}

	s.app = app
}
