package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ixugo/goddd/pkg/system"
	"github.com/vidit-app/vidit/internal/app"
	"github.com/vidit-app/vidit/internal/conf"
)

// buildVersion 编译时注入 -ldflags "-X main.buildVersion=xxx"
var buildVersion = "dev"

var confPath = flag.String("conf", filepath.Join("configs", "config.toml"), "配置文件路径")

func main() {
	flag.Parse()

	bc, err := conf.SetupConfig(filepath.Join(system.Getwd(), *confPath))
	if err != nil {
		slog.Error("load config failed", "err", err)
		os.Exit(1)
	}
	bc.BuildVersion = buildVersion

	setupSlog(bc.Debug)
	slog.Info("starting", "version", buildVersion, "config", bc.ConfigPath)

	stop, err := app.Run(bc)
	if err != nil {
		slog.Error("app start failed", "err", err)
		os.Exit(1)
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	slog.Info("shutting down")
	stop()
}

func setupSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}
