package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	Redis          *redis.Client
	Logger         *zap.Logger
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig

	// Stoppers run first during Shutdown, in order.
	Stoppers []func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	for _, stop := range b.Stoppers {
		stop()
	}
	if len(b.Stoppers) > 0 {
		log.Println("Successfully stopped background workers")
	}

	if b.Redis != nil {
		err := b.Redis.Close()
		if err != nil {
			return err
		}
		log.Println("Successfully closing Redis")
	}

	// Sync on stdout/stderr returns EINVAL on some platforms; it is not fatal.
	_ = b.Logger.Sync()
	log.Println("Successfully closing Logger")

	return nil
}
