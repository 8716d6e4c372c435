// file: config/config.go
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	MySQLDSN      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	UploadDir     string
	SeedDemoData  bool
}

// Load 读取 .env（如存在）并从环境变量构造配置
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env file")
	}

	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.MySQLDSN = getenv("MYSQL_DSN", "root:123456@tcp(localhost:3306)/treasure_hunt?charset=utf8mb4&parseTime=True&loc=Local")
	c.RedisAddr = getenv("REDIS_ADDR", "localhost:6379")
	c.RedisPassword = os.Getenv("REDIS_PASSWORD")
	c.RedisDB = 0
	c.JWTSecret = getenv("JWT_SECRET", "change-me-in-production")
	c.UploadDir = getenv("UPLOAD_DIR", "./uploads")
	c.SeedDemoData = getenv("SEED_DEMO_DATA", "false") == "true"
	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
