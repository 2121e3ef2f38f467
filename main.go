package main

import (
	"github.com/momentum-app/momentum/config"
	"github.com/momentum-app/momentum/models"
	"github.com/momentum-app/momentum/routes"
	"github.com/momentum-app/momentum/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Challenge{},
		&models.ChallengeMembership{},
		&models.Post{},
		&models.Comment{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
