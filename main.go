// main.go

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"bhojon-backend/config"
	"bhojon-backend/handlers"
	"bhojon-backend/logging"
	"bhojon-backend/middleware"
	"bhojon-backend/reservation"
	"bhojon-backend/routes"
	"bhojon-backend/store"
	"bhojon-backend/telem"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if len(cfg.KafkaBrokers) > 0 {
		hook := logging.NewKafkaHook(cfg.KafkaBrokers, cfg.KafkaTopic)
		logrus.AddHook(hook)
		defer hook.Close()
		logrus.WithField("topic", cfg.KafkaTopic).Info("Shipping logs to Kafka")
	}

	shutdownTracing, err := telem.InitTracing(context.Background(), "bhojon-backend", cfg.OTLPEndpoint)
	if err != nil {
		logrus.WithError(err).Warn("Tracing disabled")
		shutdownTracing = func(context.Context) error { return nil }
	}

	// Connect to MongoDB. A failed connection is logged and the server
	// still starts; store calls then fail with a 500.
	client := config.ConnectDB(cfg)
	var db *mongo.Database
	if client != nil {
		db = client.Database(cfg.DBName)
	}

	var locker reservation.Locker = reservation.NewLocalLocker()
	if rdb := config.ConnectRedis(cfg); rdb != nil {
		locker = reservation.NewRedisLocker(rdb)
		defer rdb.Close()
	}

	users := store.NewUsers(db)
	deps := routes.Deps{
		Users:        handlers.NewUserHandler(users, cfg.JWTSecret),
		Products:     handlers.NewProductHandler(store.NewProducts(db)),
		Categories:   handlers.NewCategoryHandler(store.NewCategories(db)),
		Bookings:     handlers.NewBookingHandler(store.NewBookings(db), users),
		Reservations: handlers.NewReservationHandler(store.NewReservations(db), locker),
		Purchases:    handlers.NewPurchaseHandler(store.NewPurchases(db)),
	}
	if client != nil {
		deps.DB = client
	}
	if cfg.RateLimitRPS > 0 {
		deps.RateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := gin.New()
	routes.SetupRoutes(r, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.Infof("Server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}
	if client != nil {
		if err := client.Disconnect(ctx); err != nil {
			logrus.WithError(err).Warn("MongoDB disconnect failed")
		}
	}
	if err := shutdownTracing(ctx); err != nil {
		logrus.WithError(err).Warn("Tracer shutdown failed")
	}
	logrus.Info("Server exited")
}
