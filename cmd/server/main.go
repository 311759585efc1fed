package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dentalmart/shop/internal/config"
	"github.com/dentalmart/shop/internal/es"
	"github.com/dentalmart/shop/internal/events"
	"github.com/dentalmart/shop/internal/httpserver"
	"github.com/dentalmart/shop/internal/mykafka"
	"github.com/dentalmart/shop/internal/repo"
	"github.com/dentalmart/shop/internal/service"
	"github.com/dentalmart/shop/pkg/logging"
	loggingmw "github.com/dentalmart/shop/pkg/middleware/logging"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, configuration)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	prod := mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS}, "order_events")

	gormRepo := &repo.GormRepo{DB: db}
	dispatcher := &events.KafkaDispatcher{Repo: gormRepo, Producer: prod}

	jwtSecret := []byte(configuration.JWT_SECRET)

	deps := httpserver.Deps{
		JWTSecret: jwtSecret,
		CartHandler: &httpserver.CartHTTP{
			Svc: &service.CartService{Repo: gormRepo},
		},
		OrderHandler: &httpserver.OrderHTTP{
			Checkout:  &service.CheckoutService{Repo: gormRepo, Dispatcher: dispatcher},
			Lifecycle: &service.LifecycleService{Repo: gormRepo, Dispatcher: dispatcher},
		},
		CatalogHandler: &httpserver.CatalogHTTP{
			Svc: &service.CatalogService{Repo: gormRepo},
		},
		NotificationHTTP: &httpserver.NotificationHTTP{Repo: gormRepo},
	}

	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		deps.SearchHandler = &httpserver.SearchHTTP{ES: esClient, Index: "product"}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
