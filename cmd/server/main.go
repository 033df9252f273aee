package main

import (
	"log"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/branch"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/config"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/db"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/delivery"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/handlers"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/logger"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/menu"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/order"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/rider"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/routes"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/stats"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	branchRepo := branch.NewRepository(database)
	branchSvc := branch.NewService(branchRepo)

	menuRepo := menu.NewRepository(database)
	menuSvc := menu.NewService(menuRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	riderRepo := rider.NewRepository(database)
	riderSvc := rider.NewService(riderRepo)

	deliveryRepo := delivery.NewRepository(database)
	deliverySvc := delivery.NewService(deliveryRepo, orderRepo)

	statsRepo := stats.NewRepository(database)
	statsSvc := stats.NewService(statsRepo)

	h := handlers.New(userSvc, branchSvc, menuSvc, orderSvc, riderSvc, deliverySvc, statsSvc)
	router := routes.Setup(h)

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(router.Run(":" + cfg.AppPort))
}
