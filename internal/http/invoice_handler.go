package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "flowlancer.com/flowlancer/internal/data_models"
	"flowlancer.com/flowlancer/internal/http/validators"
)

func (h *Handler) CreateInvoice(c echo.Context) error {
	var req dto.CreateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateInvoiceRequest(&req); err != nil {
		return respondError(c, err)
	}

	resp, err := h.invoiceService.CreateInvoiceFromProject(
		c.Request().Context(), ownerID(c), c.Param("projectID"), req,
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) GetInvoice(c echo.Context) error {
	resp, err := h.invoiceService.GetInvoice(c.Request().Context(), ownerID(c), c.Param("invoiceID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListInvoices(c echo.Context) error {
	invoices, err := h.invoiceService.ListInvoices(c.Request().Context(), ownerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(invoices),
		"invoices": invoices,
	})
}

func (h *Handler) ListProjectInvoices(c echo.Context) error {
	invoices, err := h.invoiceService.ListProjectInvoices(c.Request().Context(), ownerID(c), c.Param("projectID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(invoices),
		"invoices": invoices,
	})
}

func (h *Handler) UpdateInvoiceStatus(c echo.Context) error {
	var req dto.UpdateInvoiceStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateUpdateInvoiceStatusRequest(&req); err != nil {
		return respondError(c, err)
	}

	invoice, err := h.invoiceService.UpdateInvoiceStatus(
		c.Request().Context(), ownerID(c), c.Param("invoiceID"), req.Status,
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, invoice)
}
