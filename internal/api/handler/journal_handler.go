package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/journal-system/internal/api/metrics"
	"github.com/99minutos/journal-system/internal/core/domain"
	"github.com/99minutos/journal-system/internal/core/ports"
)

// JournalHandler handles the /journal resource. Every route requires an
// authenticated caller; visibility is decided by the service.
type JournalHandler struct {
	service ports.JournalService
}

func NewJournalHandler(service ports.JournalService) *JournalHandler {
	return &JournalHandler{service: service}
}

// List handles GET /journal.
//
// @Summary      List journals
// @Description  Admins see every journal, other users only their own. Newest first.
// @Tags         journal
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number (default 1, max 100000)"
// @Param        size  query     int  false  "Page size (default 10, max 100)"
// @Success      200   {object}  listJournalsResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /journal [get]
func (h *JournalHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var q listJournalsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.ListJournals(c.Request().Context(), p, ports.ListJournalsInput{
		Page: q.Page,
		Size: q.Size,
	})
	if err != nil {
		return err
	}

	countOperation("list", p)
	return c.JSON(http.StatusOK, toListJournalsResponse(result))
}

// Get handles GET /journal/:id.
//
// @Summary      Get a journal
// @Tags         journal
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Journal ID"
// @Success      200  {object}  journalResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /journal/{id} [get]
func (h *JournalHandler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := journalID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.GetJournal(c.Request().Context(), p, id)
	if err != nil {
		return err
	}

	countOperation("get", p)
	return c.JSON(http.StatusOK, toJournalResponse(detail))
}

// Create handles POST /journal. The caller becomes the owner.
//
// @Summary      Create a journal
// @Tags         journal
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      journalRequest  true  "Journal contents"
// @Success      201   {object}  journalResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /journal [post]
func (h *JournalHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req journalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	detail, err := h.service.CreateJournal(c.Request().Context(), p, toJournalInput(req))
	if err != nil {
		return err
	}

	countOperation("create", p)
	return c.JSON(http.StatusCreated, toJournalResponse(detail))
}

// Update handles PUT /journal/:id.
//
// @Summary      Update a journal
// @Tags         journal
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Journal ID"
// @Param        body  body      journalRequest  true  "Journal contents"
// @Success      200   {object}  journalResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /journal/{id} [put]
func (h *JournalHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := journalID(c)
	if err != nil {
		return err
	}

	var req journalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	detail, err := h.service.UpdateJournal(c.Request().Context(), p, id, toJournalInput(req))
	if err != nil {
		return err
	}

	countOperation("update", p)
	return c.JSON(http.StatusOK, toJournalResponse(detail))
}

// Delete handles DELETE /journal/:id.
//
// @Summary      Delete a journal
// @Tags         journal
// @Security     BearerAuth
// @Param        id   path  int  true  "Journal ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /journal/{id} [delete]
func (h *JournalHandler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := journalID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteJournal(c.Request().Context(), p, id); err != nil {
		return err
	}

	countOperation("delete", p)
	return c.NoContent(http.StatusNoContent)
}

func journalID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid journal id")
	}
	return id, nil
}

func countOperation(op string, p domain.Principal) {
	scope := "owner"
	if p.IsAdmin() {
		scope = "admin"
	}
	metrics.JournalOperationsTotal.WithLabelValues(op, scope).Inc()
}
