package main

import (
	"github.com/riskgate/riskgate/internal/cache"
	"github.com/riskgate/riskgate/internal/configuration"
	"github.com/riskgate/riskgate/internal/core"
	"github.com/riskgate/riskgate/internal/database"
	"github.com/riskgate/riskgate/internal/risk"

	"go.uber.org/zap"
)

func main() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))

	config := configuration.Read()
	core.NewLogger(config.App.LogLevel)

	db := database.InitDB(config.Database)
	cacheClient := cache.NewCache(config.Cache)
	defer cacheClient.Close()

	predictor := risk.NewHTTPPredictor(config.Risk)
	notify := core.NewNotifier(config.Notifier)

	core.StartHTTPServer(config, db, cacheClient, predictor, notify)
}
