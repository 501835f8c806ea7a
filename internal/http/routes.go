package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"

	middleware "flowlancer.com/flowlancer/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, redisClient rueidis.Client, rateLimitPerMinute, invoiceRateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(redisClient, rateLimitPerMinute, time.Minute, middleware.KeyByIP))

	e.GET("/portal/:token", h.Portal)

	api := e.Group("/api", middleware.RequireOwner())

	api.GET("/dashboard", h.Dashboard)

	api.POST("/projects", h.CreateProject)
	api.GET("/projects", h.ListProjects)
	api.GET("/projects/:projectID", h.GetProject)
	api.PATCH("/projects/:projectID", h.UpdateProject)
	api.DELETE("/projects/:projectID", h.DeleteProject)
	api.POST("/projects/:projectID/portal", h.EnablePortal)
	api.GET("/projects/:projectID/time", h.ProjectTime)

	api.POST("/projects/:projectID/tasks", h.CreateTask)
	api.GET("/projects/:projectID/tasks", h.ListTasks)
	api.GET("/tasks/:taskID", h.GetTask)
	api.PATCH("/tasks/:taskID", h.UpdateTask)
	api.DELETE("/tasks/:taskID", h.DeleteTask)

	api.POST("/tasks/:taskID/timer/start", h.StartTimer)
	api.POST("/tasks/:taskID/timer/stop", h.StopTimer)
	api.GET("/tasks/:taskID/time", h.TaskTime)

	api.POST("/projects/:projectID/invoices", h.CreateInvoice,
		middleware.RateLimiter(redisClient, invoiceRateLimitPerMinute, time.Minute, middleware.KeyByOwnerProject))
	api.GET("/projects/:projectID/invoices", h.ListProjectInvoices)
	api.GET("/invoices", h.ListInvoices)
	api.GET("/invoices/:invoiceID", h.GetInvoice)
	api.PATCH("/invoices/:invoiceID/status", h.UpdateInvoiceStatus)
}
