package routers

import (
	"assistant-service/internal/app/delivery/http/controllers"
	"assistant-service/internal/app/delivery/http/middlewares"
	"assistant-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func useCommonMiddlewares(router *chi.Mux, middlewares *middlewares.Middlewares) {
	corsOptions := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodOptions},
		AllowedHeaders: []string{constvars.HeaderAccept, constvars.HeaderContentType, constvars.HeaderXRequestID},
		ExposedHeaders: []string{constvars.HeaderXRequestID},
		MaxAge:         300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.InboundRateLimit())
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)

	router.NotFound(middlewares.NotFound)
	router.MethodNotAllowed(middlewares.MethodNotAllowed)
}

func SetupTimetableRoutes(
	router *chi.Mux,
	middlewares *middlewares.Middlewares,
	timetableController *controllers.TimetableController,
) {
	useCommonMiddlewares(router, middlewares)
	attachTimetableRoutes(router, middlewares, timetableController)
}

func SetupGeoRoutes(
	router *chi.Mux,
	middlewares *middlewares.Middlewares,
	geoController *controllers.GeoController,
) {
	useCommonMiddlewares(router, middlewares)
	attachGeoRoutes(router, middlewares, geoController)
}
