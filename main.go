package main

import (
	"github.com/healthed-zw/backend/config"
	"github.com/healthed-zw/backend/models"
	"github.com/healthed-zw/backend/routes"
	"github.com/healthed-zw/backend/store"
	"github.com/healthed-zw/backend/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Student{})

	kv := store.NewRedisKV(utils.GetRedis())
	r := routes.SetupRouter(db, kv)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
