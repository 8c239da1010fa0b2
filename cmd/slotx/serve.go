package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/logger"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/server"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/util"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP upload service",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{Name: "port", Usage: "Listen port (overrides config)"},
			&cli.BoolFlag{Name: "dev", Usage: "Development mode"},
			&cli.BoolFlag{Name: "open", Usage: "Open the service URL in a browser"},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	// 命令行参数覆盖配置
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}
	if c.Bool("dev") {
		cfg.Server.DevMode = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg, version)

	if c.Bool("open") {
		url := fmt.Sprintf("http://localhost:%d/api/status", cfg.Server.Port)
		go func() {
			time.Sleep(500 * time.Millisecond)
			if err := util.OpenBrowser(url); err != nil {
				logger.Log.Warn().Err(err).Str("url", url).Msg("could not open browser")
			}
		}()
	}

	logger.Log.Info().
		Str("version", version).
		Int("port", cfg.Server.Port).
		Bool("dev", cfg.Server.DevMode).
		Msg("starting slotx")

	return srv.Run(ctx)
}

