package routers

import (
	"assistant-service/internal/app/delivery/http/controllers"
	"assistant-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachGeoRoutes(router chi.Router, middlewares *middlewares.Middlewares, geoController *controllers.GeoController) {
	router.Post("/mcp", geoController.MCP)
	router.Get("/geocode", geoController.Geocode)
	router.Get("/reverse", geoController.Reverse)
	router.Get("/status", geoController.Status)
}
