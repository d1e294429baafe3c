package routers

import (
	"assistant-service/internal/app/delivery/http/controllers"
	"assistant-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachTimetableRoutes(router chi.Router, middlewares *middlewares.Middlewares, timetableController *controllers.TimetableController) {
	router.Post("/mcp", timetableController.MCP)
	router.Get("/status", timetableController.Status)
	router.Get("/day", timetableController.Day)
}
