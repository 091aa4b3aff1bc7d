package main

import (
	"github.com/jaylenwa/goblog/config"
	"github.com/jaylenwa/goblog/models"
	"github.com/jaylenwa/goblog/routes"
	"github.com/jaylenwa/goblog/services"
	"github.com/jaylenwa/goblog/stores"
	"github.com/jaylenwa/goblog/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Post{}, &models.Comment{})

	users := stores.NewGormIdentityStore(db)
	content := stores.NewGormContentStore(db)

	auth := services.NewAuthService(users)
	blog := services.NewContentService(content)

	r := routes.SetupRouter(auth, blog, users)

	utils.Sugar.Infof("starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
