package main

import (
	stdLog "log"
	"os"
	"time"

	"github.com/Astemirdum/bookshelf-service/bookshelf/app"
	"github.com/Astemirdum/bookshelf-service/bookshelf/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// @title       Bookshelf API
// @version     1.0
// @description In-memory bookshelf service.
// @BasePath    /
func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLog.Fatal("load envs from .env ", err)
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal("run ", err)
	}
}
