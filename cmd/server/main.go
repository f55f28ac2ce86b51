package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/Opeoluwa-Osho/minesweeper/internal/app"
	"github.com/Opeoluwa-Osho/minesweeper/internal/config"
	"github.com/Opeoluwa-Osho/minesweeper/internal/mines"
)

var (
	log = logrus.New()

	configPath string
)

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func setupLogging(cfg config.Config) error {
	if cfg.Development() {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if cfg.LogFile.Path != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.LogFile.Path,
			MaxSize:    cfg.LogFile.MaxSizeMB,
			MaxBackups: cfg.LogFile.MaxBackups,
			MaxAge:     cfg.LogFile.MaxAgeDays,
			Level:      log.GetLevel(),
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return err
		}
		log.AddHook(hook)
	}

	mines.Log = log
	return nil
}

func main() {
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		if err := config.Read(configPath, &cfg); err != nil {
			log.Fatal(err)
		}
	}
	cfg.LoadEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config: ", err)
	}

	if err := setupLogging(cfg); err != nil {
		log.Fatal("unable to set up log file: ", err)
	}

	log.Info("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	a, err := app.New(log, cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := a.Start(ctx); err != nil {
		log.Error("exit reason: ", err)
		os.Exit(1)
	}
}
