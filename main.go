package main

import (
	"github.com/kakage553656552/vue-forum/config"
	"github.com/kakage553656552/vue-forum/forum"
	"github.com/kakage553656552/vue-forum/routes"
	"github.com/kakage553656552/vue-forum/store"
	"github.com/kakage553656552/vue-forum/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	st, err := store.Open(cfg.DataFile)
	if err != nil {
		utils.Sugar.Fatalf("failed to open data file %s: %v", cfg.DataFile, err)
	}

	svc := forum.NewService(st)
	r := routes.SetupRouter(svc)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
