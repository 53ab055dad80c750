package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/Intendencia-api/pkg/config"
	"github.com/jhoicas/Intendencia-api/pkg/logger"
)

type configKey struct{}

func main() {
	app := &cli.App{
		Name:                 "intendencia",
		EnableBashCompletion: true,
		Usage:                "herramienta de administración del libro de equipo",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "store",
				Usage:   "motor de almacenamiento (postgres|sqlite)",
				EnvVars: []string{"STORE_DRIVER"},
			},
			&cli.StringFlag{
				Name:    "sqlite-path",
				Usage:   "archivo SQLite",
				EnvVars: []string{"SQLITE_PATH"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "connection string de PostgreSQL",
				EnvVars: []string{"DATABASE_URL"},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log en nivel debug",
			},
		},
		Before: func(ctx *cli.Context) error {
			conf, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			if ctx.IsSet("store") {
				conf.Store.Driver = ctx.String("store")
			}
			if ctx.IsSet("sqlite-path") {
				conf.Store.SQLitePath = ctx.String("sqlite-path")
			}
			if ctx.IsSet("database-url") {
				conf.DB.DatabaseURL = ctx.String("database-url")
			}
			if ctx.Bool("debug") {
				conf.App.LogLevel = "debug"
			}
			ctx.Context = context.WithValue(ctx.Context, configKey{}, conf)
			return nil
		},
		Commands: []*cli.Command{
			NewMigrateCommand(),
			NewSeedCommand(),
			NewBalanceCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func getConfig(ctx *cli.Context) *config.Config {
	return ctx.Context.Value(configKey{}).(*config.Config)
}

func newLogger(conf *config.Config) *logger.Logger {
	return logger.New(logger.Config{
		Env:     "development",
		Level:   conf.App.LogLevel,
		AppName: "intendencia",
		Out:     os.Stderr,
	})
}
