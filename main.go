// file: main.go
package main

import (
	"log"
	"os"

	"github.com/SALIKRAFIQ01/th16/config"
	"github.com/SALIKRAFIQ01/th16/database"
	"github.com/SALIKRAFIQ01/th16/routes"
	"github.com/SALIKRAFIQ01/th16/services"
	"github.com/SALIKRAFIQ01/th16/utils"
	"github.com/SALIKRAFIQ01/th16/ws"
)

func main() {
	cfg := config.Load()

	utils.InitJWT(cfg.JWTSecret)

	database.Connect(cfg.MySQLDSN)
	database.MigrateTables()
	database.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	if cfg.SeedDemoData {
		database.SeedDemoData()
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload dir: %v", err)
	}

	hub := ws.NewHub()
	store := database.NewGormStore(database.DB)
	engine := services.NewEngine(store, hub, nil)

	r := routes.SetupRouter(engine, hub, cfg.UploadDir)

	log.Println("Starting server on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
