package main

import (
	"flag"

	"tarweej.app/configs"
	"tarweej.app/configs/configslog"
	"tarweej.app/database"
)

func main() {
	configslog.InitLogger()
	defer configslog.Sync()

	migrateFlag := flag.Bool("migrate", false, "run database migrations")
	seedFlag := flag.Bool("seed", false, "run database seeders")
	flag.Parse()

	cfg := configs.LoadEnv()
	db := configs.InitDB(cfg)

	database.Initialize(db, *migrateFlag, *seedFlag)
}
