package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/daybook/journal-api/internal/api/metrics"
	"github.com/daybook/journal-api/internal/core/ports"
)

// EntryHandler handles HTTP requests for journal entries.
type EntryHandler struct {
	service ports.EntryService
}

func NewEntryHandler(service ports.EntryService) *EntryHandler {
	return &EntryHandler{service: service}
}

type createEntryRequest struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content"`
	Mood    string   `json:"mood" validate:"omitempty,oneof=great good neutral low rough"`
	Tags    []string `json:"tags"`
}

type updateEntryRequest struct {
	Title   string   `json:"title" validate:"omitempty,max=200"`
	Content string   `json:"content"`
	Mood    string   `json:"mood" validate:"omitempty,oneof=great good neutral low rough"`
	Tags    []string `json:"tags"`
}

// Create handles POST /v1/entries.
//
// @Summary      Create a journal entry
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEntryRequest  true  "Entry details"
// @Success      201   {object}  domain.Entry
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/entries [post]
func (h *EntryHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	entry, err := h.service.Create(c.Request().Context(), ports.CreateEntryInput{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Mood:    req.Mood,
		Tags:    req.Tags,
	})
	if err != nil {
		return err
	}

	metrics.EntriesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, entry)
}

// Get handles GET /v1/entries/:id.
//
// @Summary      Get an entry
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Entry id"
// @Success      200  {object}  domain.Entry
// @Failure      404  {object}  map[string]string
// @Router       /v1/entries/{id} [get]
func (h *EntryHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	entry, err := h.service.Get(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// Update handles PUT /v1/entries/:id.
//
// @Summary      Update an entry
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Entry id"
// @Param        body  body      updateEntryRequest  true  "Fields to change"
// @Success      200   {object}  domain.Entry
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/entries/{id} [put]
func (h *EntryHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	entry, err := h.service.Update(c.Request().Context(), ports.UpdateEntryInput{
		EntryID: c.Param("id"),
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Mood:    req.Mood,
		Tags:    req.Tags,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// Delete handles DELETE /v1/entries/:id.
//
// @Summary      Delete an entry
// @Tags         entries
// @Security     BearerAuth
// @Param        id  path  string  true  "Entry id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/entries/{id} [delete]
func (h *EntryHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/entries?limit=&offset=.
//
// @Summary      List entries, newest first
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (default 20, max 100)"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  ports.EntryPage
// @Failure      401     {object}  map[string]string
// @Router       /v1/entries [get]
func (h *EntryHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	page, err := h.service.List(c.Request().Context(), ports.ListEntriesInput{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Insights handles GET /v1/insights.
//
// @Summary      Journaling activity summary
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.InsightsResult
// @Failure      403  {object}  map[string]string
// @Router       /v1/insights [get]
func (h *EntryHandler) Insights(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	result, err := h.service.Insights(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
