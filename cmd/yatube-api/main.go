package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/itchan-dev/yatube/internal/router"
	"github.com/itchan-dev/yatube/internal/setup"
	"github.com/itchan-dev/yatube/shared/config"
	"github.com/itchan-dev/yatube/shared/logger"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("initializing dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	r := router.New(deps)

	logger.Log.Info("server started", "addr", cfg.Public.Addr)
	if err := http.ListenAndServe(cfg.Public.Addr, r); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
