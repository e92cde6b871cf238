package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ppk205/comicreader/internal/api/metrics"
	"github.com/ppk205/comicreader/internal/core/domain"
)

// ReadingQueue is what the handler needs from the dispatcher: writes are
// enqueued, never awaited.
type ReadingQueue interface {
	Enqueue(entry domain.ReadingEntry)
}

// ReadingHistory is the read side, served synchronously.
type ReadingHistory interface {
	History(ctx context.Context, userID string, limit int) ([]domain.ReadingEntry, error)
}

type ReadingHandler struct {
	queue   ReadingQueue
	history ReadingHistory
}

func NewReadingHandler(queue ReadingQueue, history ReadingHistory) *ReadingHandler {
	return &ReadingHandler{queue: queue, history: history}
}

type readingRequest struct {
	MangaID   string `json:"mangaId" validate:"required"`
	ChapterID string `json:"chapterId" validate:"required"`
}

// Record accepts a chapter-read event and enqueues it for async persistence.
//
// @Summary      Record a chapter read
// @Tags         reading
// @Accept       json
// @Produce      json
// @Param        body  body  readingRequest  true  "Read event"
// @Success      202
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/reading [post]
func (h *ReadingHandler) Record(c echo.Context) error {
	userID, err := sessionAccountID(c)
	if err != nil {
		return err
	}

	var req readingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	h.queue.Enqueue(domain.ReadingEntry{
		UserID:    userID,
		MangaID:   req.MangaID,
		ChapterID: req.ChapterID,
		ReadAt:    time.Now().UTC(),
	})
	metrics.ReadingEventsTotal.Inc()

	return c.NoContent(http.StatusAccepted)
}

// List returns the caller's recent reading history, newest first.
//
// @Summary      List reading history
// @Tags         reading
// @Produce      json
// @Param        limit  query     int  false  "Maximum entries (default 50)"
// @Success      200    {array}   domain.ReadingEntry
// @Failure      401    {object}  map[string]string
// @Router       /api/reading [get]
func (h *ReadingHandler) List(c echo.Context) error {
	userID, err := sessionAccountID(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	entries, err := h.history.History(c.Request().Context(), userID, limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.ReadingEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}
