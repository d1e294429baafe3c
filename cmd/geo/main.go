package main

import (
	"assistant-service/internal/app/config"
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/app/delivery/http/controllers"
	"assistant-service/internal/app/delivery/http/middlewares"
	"assistant-service/internal/app/delivery/http/routers"
	"assistant-service/internal/app/drivers/database"
	"assistant-service/internal/app/drivers/logger"
	"assistant-service/internal/app/services/core/geocoding"
	"assistant-service/internal/app/services/shared/nominatim"
	"assistant-service/internal/app/services/shared/ratelimiter"
	"assistant-service/internal/app/services/shared/redis"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig, "geo")

	chiRouter := chi.NewRouter()
	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	if driverConfig.Redis.Enabled {
		redisClient, err := database.NewRedisClient(context.Background(), driverConfig)
		if err != nil {
			log.Warn("Redis unavailable, geocoding cache disabled", zap.Error(err))
		} else {
			bootstrap.Redis = redisClient
			log.Info("Successfully connected to Redis")
		}
	}

	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.Geo.Port,
		Handler: chiRouter,
	}

	go func() {
		log.Info("Geo server listening", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Error during bootstrap shutdown", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	geoConfig := bootstrap.InternalConfig.Geo

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Redis
	var redisRepository contracts.RedisRepository
	if bootstrap.Redis != nil {
		redisRepository = redis.NewRedisRepository(bootstrap.Redis)
	}

	// Nominatim
	gate := ratelimiter.NewMinIntervalGate(geoConfig.MinInterval, bootstrap.Logger)
	nominatimClient := nominatim.NewNominatimClient(
		geoConfig.NominatimBaseURL,
		geoConfig.UserAgent,
		geoConfig.HTTPTimeout,
		gate,
		bootstrap.Logger,
	)

	// Geocoding
	geocodingUsecase := geocoding.NewGeocodingUsecase(
		nominatimClient,
		redisRepository,
		geoConfig.CacheTTL,
		gate.Interval(),
		bootstrap.Logger,
	)
	geoController := controllers.NewGeoController(bootstrap.Logger, geocodingUsecase)

	routers.SetupGeoRoutes(bootstrap.Router, middlewares, geoController)
}
