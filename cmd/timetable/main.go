package main

import (
	"assistant-service/internal/app/config"
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/app/delivery/http/controllers"
	"assistant-service/internal/app/delivery/http/middlewares"
	"assistant-service/internal/app/delivery/http/routers"
	"assistant-service/internal/app/drivers/logger"
	minioDriver "assistant-service/internal/app/drivers/storage"
	"assistant-service/internal/app/services/core/timetable"
	"assistant-service/internal/app/services/shared/storage"
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
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

	log := logger.NewZapLogger(driverConfig, internalConfig, "timetable")

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.String("timezone", internalConfig.App.Timezone), zap.Error(err))
	}

	if internalConfig.Timetable.WeekAStart == "" {
		log.Fatal("TIMETABLE_WEEK_A_START is required (YYYY-MM-DD of a week A Monday)")
	}
	anchor, err := utils.ParseDate(internalConfig.Timetable.WeekAStart, location)
	if err != nil {
		log.Fatal("Invalid TIMETABLE_WEEK_A_START", zap.Error(err))
	}
	if anchor.Weekday() != time.Monday {
		log.Warn("TIMETABLE_WEEK_A_START is not a Monday, weeks will roll over on another weekday",
			zap.String(constvars.LoggingDateKey, internalConfig.Timetable.WeekAStart),
			zap.String("weekday", anchor.Weekday().String()),
		)
	}

	source, err := newTimetableSource(driverConfig, internalConfig)
	if err != nil {
		log.Fatal("Error initializing timetable source", zap.Error(err))
	}

	chiRouter := chi.NewRouter()
	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	timetableUsecase := bootstrapingTheApp(bootstrap, source, anchor, location)

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	reloaded, err := timetableUsecase.Reload(initCtx)
	initCancel()
	if err != nil {
		log.Fatal("Initial timetable load failed", zap.String(constvars.LoggingSourceKey, source.Location()), zap.Error(err))
	}
	log.Info("Timetable loaded",
		zap.String(constvars.LoggingSourceKey, source.Location()),
		zap.Int(constvars.LoggingLessonCountKey, reloaded.Lessons),
	)

	if internalConfig.Timetable.ReloadOnSIGHUP {
		bootstrap.Stoppers = append(bootstrap.Stoppers, listenForReload(log, timetableUsecase))
	}
	if spec := internalConfig.Timetable.ReloadCronSpec; spec != "" {
		reloadWorker := timetable.NewReloadWorker(log, timetableUsecase, spec)
		if err := reloadWorker.Start(context.Background()); err != nil {
			log.Fatal("Invalid TIMETABLE_RELOAD_CRON_SPEC", zap.String("cron_spec", spec), zap.Error(err))
		}
		bootstrap.Stoppers = append(bootstrap.Stoppers, reloadWorker.Stop)
	}

	server := &http.Server{
		Addr:    internalConfig.Timetable.Port,
		Handler: chiRouter,
	}

	go func() {
		log.Info("Timetable server listening", zap.String("addr", server.Addr))
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

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Error during bootstrap shutdown", zap.Error(err))
	}

	log.Info("Server exiting")
}

func newTimetableSource(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) (contracts.TimetableSource, error) {
	switch internalConfig.Timetable.Source {
	case constvars.TimetableSourceFile:
		return storage.NewFileSource(internalConfig.Timetable.CSVPath), nil
	case constvars.TimetableSourceMinio:
		minioClient, err := minioDriver.NewMinio(driverConfig)
		if err != nil {
			return nil, err
		}
		return storage.NewMinioSource(minioClient, internalConfig.Timetable.MinioBucketName, internalConfig.Timetable.MinioObjectName), nil
	default:
		return nil, fmt.Errorf("unknown TIMETABLE_SOURCE %q, expected %s or %s",
			internalConfig.Timetable.Source, constvars.TimetableSourceFile, constvars.TimetableSourceMinio)
	}
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, source contracts.TimetableSource, anchor time.Time, location *time.Location) contracts.TimetableUsecase {
	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Timetable
	scheduleStore := timetable.NewScheduleStore(bootstrap.Logger)
	resolver := timetable.NewResolver(scheduleStore, anchor, location)
	timetableUsecase := timetable.NewTimetableUsecase(scheduleStore, resolver, source, bootstrap.Logger)
	timetableController := controllers.NewTimetableController(bootstrap.Logger, timetableUsecase)

	routers.SetupTimetableRoutes(bootstrap.Router, middlewares, timetableController)
	return timetableUsecase
}

// listenForReload re-reads the source on every SIGHUP until the returned
// stop func is called.
func listenForReload(log *zap.Logger, timetableUsecase contracts.TimetableUsecase) func() {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-hup:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				result, err := timetableUsecase.Reload(ctx)
				cancel()
				if err != nil {
					log.Error("SIGHUP reload failed, keeping previous timetable", zap.Error(err))
					continue
				}
				log.Info("SIGHUP reload done", zap.Int(constvars.LoggingLessonCountKey, result.Lessons))
			}
		}
	}()

	return func() {
		signal.Stop(hup)
		close(done)
	}
}
