package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tarweej.app/configs"
	"tarweej.app/configs/configslog"
	"tarweej.app/database"
	"tarweej.app/jobs"
	"tarweej.app/routes"
)

func main() {
	configslog.InitLogger()
	defer configslog.Sync()

	migrateFlag := flag.Bool("migrate", false, "run database migrations before serving")
	seedFlag := flag.Bool("seed", false, "run database seeders before serving")
	flag.Parse()

	cfg := configs.LoadEnv()
	db := configs.InitDB(cfg)

	if *migrateFlag || *seedFlag {
		database.Initialize(db, *migrateFlag, *seedFlag)
	}

	app := fiber.New(fiber.Config{
		AppName:      "tarweej",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})
	routes.SetupRoutes(app)

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	sweeper := jobs.NewSweeper()
	go sweeper.Start(sweepCtx)

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			configslog.Log.Fatal("server stopped unexpectedly", zap.Error(err))
		}
	}()
	configslog.SLog.Infof("listening on %s", cfg.ListenAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	configslog.SLog.Info("shutdown signal received")
	stopSweeper()

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		configslog.Log.Error("graceful shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	configslog.SLog.Info("shutdown complete")
}
