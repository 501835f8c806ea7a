package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "flowlancer.com/flowlancer/internal/data_models"
)

func (h *Handler) StartTimer(c echo.Context) error {
	entry, err := h.timeService.StartTimer(c.Request().Context(), ownerID(c), c.Param("taskID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.TimerResponse{Entry: entry})
}

func (h *Handler) StopTimer(c echo.Context) error {
	entry, err := h.timeService.StopTimer(c.Request().Context(), ownerID(c), c.Param("taskID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TimerResponse{Entry: entry})
}

func (h *Handler) TaskTime(c echo.Context) error {
	seconds, err := h.timeService.SummarizeTaskTime(c.Request().Context(), ownerID(c), c.Param("taskID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TimeSummaryResponse{
		TotalSeconds: seconds,
		TotalHours:   float64(seconds) / 3600,
	})
}

func (h *Handler) ProjectTime(c echo.Context) error {
	seconds, err := h.timeService.SummarizeProjectTime(c.Request().Context(), ownerID(c), c.Param("projectID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TimeSummaryResponse{
		TotalSeconds: seconds,
		TotalHours:   float64(seconds) / 3600,
	})
}
