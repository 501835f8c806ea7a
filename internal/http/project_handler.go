package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "flowlancer.com/flowlancer/internal/data_models"
	"flowlancer.com/flowlancer/internal/http/validators"
)

func (h *Handler) CreateProject(c echo.Context) error {
	var req dto.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateProjectRequest(&req); err != nil {
		return respondError(c, err)
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), ownerID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, project)
}

func (h *Handler) ListProjects(c echo.Context) error {
	projects, err := h.projectService.ListProjects(c.Request().Context(), ownerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(projects),
		"projects": projects,
	})
}

func (h *Handler) GetProject(c echo.Context) error {
	project, err := h.projectService.GetProject(c.Request().Context(), ownerID(c), c.Param("projectID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (h *Handler) UpdateProject(c echo.Context) error {
	var req dto.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	project, err := h.projectService.UpdateProject(c.Request().Context(), ownerID(c), c.Param("projectID"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(c echo.Context) error {
	if err := h.projectService.DeleteProject(c.Request().Context(), ownerID(c), c.Param("projectID")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) EnablePortal(c echo.Context) error {
	token, err := h.projectService.EnablePortal(c.Request().Context(), ownerID(c), c.Param("projectID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"portal_token": token})
}

func (h *Handler) Portal(c echo.Context) error {
	view, err := h.projectService.PortalView(c.Request().Context(), c.Param("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) Dashboard(c echo.Context) error {
	summary, err := h.dashboardService.Summary(c.Request().Context(), ownerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
