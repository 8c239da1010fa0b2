package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/config"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/logger"
)

// 构建时通过 -ldflags "-X main.version=..." 注入
var version = "dev"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Usage:   "Path to config.toml",
		Value:   config.DefaultPath(),
		EnvVars: []string{"SLOTX_CONFIG"},
	}
}

func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.SetLevel(cfg.Log.Level)
	if cfg.Log.JSON {
		logger.SetJSON(os.Stdout)
	}
	return cfg, nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "slotx",
		Usage:   "Split sales and inventory exports into per-brand report workbooks",
		Version: version,
		Commands: []*cli.Command{
			serveCommand(),
			generateCommand(),
		},
	}
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Log.Warn().Err(err).Msg("could not load .env file")
	}

	if err := newApp().Run(os.Args); err != nil {
		logger.Log.Error().Err(err).Msg("slotx failed")
		os.Exit(1)
	}
}
