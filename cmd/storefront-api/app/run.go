package app

import (
	"context"
	"database/sql"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/pmdeguzman/storefront-api/configs"
	"github.com/pmdeguzman/storefront-api/internal/adapter/cache"
	httpadapter "github.com/pmdeguzman/storefront-api/internal/adapter/http"
	"github.com/pmdeguzman/storefront-api/internal/adapter/http/middleware"
	"github.com/pmdeguzman/storefront-api/internal/adapter/kafka"
	"github.com/pmdeguzman/storefront-api/internal/adapter/repo"
	"github.com/pmdeguzman/storefront-api/internal/logging"
	"github.com/pmdeguzman/storefront-api/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logging.Init(cfg.App.Name, cfg.App.LogFile, cfg.App.LogLevel)

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.RequestTimeout)
	err = db.PingContext(ctx)
	cancel()
	if err != nil {
		return nil, nil, err
	}

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	// infra
	catalogRepo := repo.NewMySQLCatalogRepo(db)
	orderRepo := repo.NewMySQLOrderRepo(db)
	cartRepo := repo.NewMySQLCartRepo(db)
	catalogCache := cache.NewRedisCatalogCache(rdb, cfg.Redis.CatalogTTL)
	statusCache := cache.NewRedisStatusCache(rdb, cfg.Redis.StatusTTL)

	// use cases
	placeUC := usecase.NewPlaceOrder(catalogRepo, orderRepo, cartRepo, cfg.DeliveryFee(), logging.New("place-order"))
	ordersUC := usecase.NewOrders(orderRepo, statusCache, logging.New("orders"))
	catalogUC := usecase.NewCatalog(catalogRepo, catalogCache, logging.New("catalog"))
	cartUC := usecase.NewCart(cartRepo, catalogRepo, logging.New("cart"))

	// fulfillment status events (optional: disabled without brokers)
	consumerCancel := func() {}
	if len(cfg.Kafka.Brokers) > 0 {
		grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
		if err != nil {
			_ = db.Close()
			_ = rdb.Close()
			return nil, nil, err
		}
		h := kafka.NewOrderStatusChangedHandler(orderRepo, statusCache, logging.New("status-events"))
		consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.StatusTopic}, h.Handle, logging.New("kafka"))

		var cctx context.Context
		cctx, consumerCancel = context.WithCancel(context.Background())
		go func() {
			if err := consumer.Start(cctx); err != nil && cctx.Err() == nil {
				logging.New("kafka").Error("consumer stopped", "err", err)
			}
		}()
	}

	// handlers + router + middleware
	oh := httpadapter.NewOrderHandler(placeUC, ordersUC, cfg.HTTP.RequestTimeout)
	ph := httpadapter.NewProductHandler(catalogUC, cfg.HTTP.RequestTimeout)
	ch := httpadapter.NewCartHandler(cartUC, cfg.HTTP.RequestTimeout)
	authz := middleware.NewAuthz(cfg)
	router := httpadapter.NewRouter(oh, ph, ch, authz)

	cleanup := func() {
		consumerCancel()
		_ = db.Close()
		_ = rdb.Close()
	}

	return &App{Router: router}, cleanup, nil
}
