package main

import (
	"os"

	"github.com/wb-go/wbf/zlog"

	"github.com/Nurash908/Selfie2Snap/internal/app"
	"github.com/Nurash908/Selfie2Snap/internal/config"
)

func main() {
	zlog.Init()

	cfg, err := config.MustLoad()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to load config")
	}

	application, err := app.NewApp(cfg, &zlog.Logger)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to create app")
	}

	if err := application.Run(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Server failed")
	}

	os.Exit(0)
}
