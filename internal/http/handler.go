package http

import (
	"github.com/labstack/echo/v4"

	apperrors "flowlancer.com/flowlancer/internal/errors"
	middleware "flowlancer.com/flowlancer/internal/http/middlewares"
	"flowlancer.com/flowlancer/internal/services"
)

type Handler struct {
	projectService   *services.ProjectService
	taskService      *services.TaskService
	timeService      *services.TimeService
	invoiceService   *services.InvoiceService
	dashboardService *services.DashboardService
}

func NewHandler(
	projectService *services.ProjectService,
	taskService *services.TaskService,
	timeService *services.TimeService,
	invoiceService *services.InvoiceService,
	dashboardService *services.DashboardService,
) *Handler {
	return &Handler{
		projectService:   projectService,
		taskService:      taskService,
		timeService:      timeService,
		invoiceService:   invoiceService,
		dashboardService: dashboardService,
	}
}

func ownerID(c echo.Context) string {
	id, _ := c.Get(middleware.ContextOwnerID).(string)
	return id
}

func respondError(c echo.Context, err error) error {
	ex := apperrors.From(err)
	return c.JSON(ex.StatusCode, echo.Map{
		"error":   ex.Kind,
		"message": ex.Message,
	})
}
