package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ppk205/comicreader/internal/api/metrics"
	"github.com/ppk205/comicreader/internal/core/domain"
)

// CatalogBackend is the slice of the backend client the proxy routes use.
type CatalogBackend interface {
	MangaList(ctx context.Context) ([]domain.Manga, error)
	MangaByID(ctx context.Context, id string) (*domain.Manga, error)
	Posts(ctx context.Context, rawQuery string) ([]domain.Post, error)
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	ModerationReports(ctx context.Context) ([]domain.ActivityLog, error)
	ModerationQueue(ctx context.Context) ([]domain.Manga, error)
}

// CatalogHandler forwards catalog reads to the remote backend. List routes
// degrade to bundled sample data when the backend is unreachable so the site
// stays browsable offline; detail routes relay the backend failure.
type CatalogHandler struct {
	backend CatalogBackend
	log     zerolog.Logger
}

func NewCatalogHandler(backend CatalogBackend, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{backend: backend, log: log}
}

// MangaList proxies GET /api/manga.
//
// @Summary      List manga
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Manga
// @Router       /api/manga [get]
func (h *CatalogHandler) MangaList(c echo.Context) error {
	const route = "/api/manga"
	start := time.Now()
	items, err := h.backend.MangaList(c.Request().Context())
	metrics.BackendRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	if err != nil {
		h.log.Warn().Err(err).Msg("manga list unavailable, serving samples")
		metrics.ProxyRequestsTotal.WithLabelValues(route, "fallback").Inc()
		c.Response().Header().Set("X-Fallback", "samples")
		return c.JSON(http.StatusOK, sampleManga)
	}
	metrics.ProxyRequestsTotal.WithLabelValues(route, "ok").Inc()
	return c.JSON(http.StatusOK, items)
}

// MangaByID proxies GET /api/manga/:id. Backend failures are relayed with
// their original status via the central error handler.
//
// @Summary      Get one manga
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Series ID"
// @Success      200  {object}  domain.Manga
// @Failure      404  {object}  map[string]string
// @Router       /api/manga/{id} [get]
func (h *CatalogHandler) MangaByID(c echo.Context) error {
	const route = "/api/manga/:id"
	m, err := h.backend.MangaByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		metrics.ProxyRequestsTotal.WithLabelValues(route, "error").Inc()
		return err
	}
	metrics.ProxyRequestsTotal.WithLabelValues(route, "ok").Inc()
	return c.JSON(http.StatusOK, m)
}

// Posts proxies GET /api/posts.
//
// @Summary      List community posts
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Post
// @Router       /api/posts [get]
func (h *CatalogHandler) Posts(c echo.Context) error {
	const route = "/api/posts"
	rawQuery := ""
	if q := c.Request().URL.RawQuery; q != "" {
		rawQuery = "?" + q
	}
	posts, err := h.backend.Posts(c.Request().Context(), rawQuery)
	if err != nil {
		h.log.Warn().Err(err).Msg("posts unavailable, serving samples")
		metrics.ProxyRequestsTotal.WithLabelValues(route, "fallback").Inc()
		c.Response().Header().Set("X-Fallback", "samples")
		return c.JSON(http.StatusOK, samplePosts)
	}
	metrics.ProxyRequestsTotal.WithLabelValues(route, "ok").Inc()
	return c.JSON(http.StatusOK, posts)
}

// ModerationReports proxies GET /api/moderation/reports. The route is gated
// to moderator and admin sessions.
//
// @Summary      List open user reports
// @Tags         moderation
// @Produce      json
// @Success      200  {array}   domain.ActivityLog
// @Failure      403  {object}  map[string]string
// @Router       /api/moderation/reports [get]
func (h *CatalogHandler) ModerationReports(c echo.Context) error {
	const route = "/api/moderation/reports"
	reports, err := h.backend.ModerationReports(c.Request().Context())
	if err != nil {
		metrics.ProxyRequestsTotal.WithLabelValues(route, "error").Inc()
		return err
	}
	metrics.ProxyRequestsTotal.WithLabelValues(route, "ok").Inc()
	if reports == nil {
		reports = []domain.ActivityLog{}
	}
	return c.JSON(http.StatusOK, reports)
}

// ModerationQueue proxies GET /api/moderation/queue.
//
// @Summary      List content awaiting approval
// @Tags         moderation
// @Produce      json
// @Success      200  {array}   domain.Manga
// @Failure      403  {object}  map[string]string
// @Router       /api/moderation/queue [get]
func (h *CatalogHandler) ModerationQueue(c echo.Context) error {
	const route = "/api/moderation/queue"
	queue, err := h.backend.ModerationQueue(c.Request().Context())
	if err != nil {
		metrics.ProxyRequestsTotal.WithLabelValues(route, "error").Inc()
		return err
	}
	metrics.ProxyRequestsTotal.WithLabelValues(route, "ok").Inc()
	if queue == nil {
		queue = []domain.Manga{}
	}
	return c.JSON(http.StatusOK, queue)
}

// DashboardStats proxies GET /api/dashboard/stats.
//
// @Summary      Dashboard summary
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  domain.DashboardStats
// @Router       /api/dashboard/stats [get]
func (h *CatalogHandler) DashboardStats(c echo.Context) error {
	const route = "/api/dashboard/stats"
	stats, err := h.backend.DashboardStats(c.Request().Context())
	if err != nil {
		metrics.ProxyRequestsTotal.WithLabelValues(route, "error").Inc()
		return err
	}
	metrics.ProxyRequestsTotal.WithLabelValues(route, "ok").Inc()
	return c.JSON(http.StatusOK, stats)
}
