// Package server exposes the publish webhook and page reads over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gdg-fisk/content-pipeline/internal/async"
	"github.com/gdg-fisk/content-pipeline/internal/export"
	"github.com/gdg-fisk/content-pipeline/internal/pages"
	"github.com/gdg-fisk/content-pipeline/internal/pipeline"
)

// Handler holds the webhook's collaborators.
type Handler struct {
	queue    async.Queue
	store    *pages.Store
	exporter *export.Service
	logger   *slog.Logger
}

func NewHandler(queue async.Queue, store *pages.Store, exporter *export.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{queue: queue, store: store, exporter: exporter, logger: logger}
}

// NewRouter wires the routes. Publishing is asynchronous: the webhook only
// enqueues and acknowledges.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", h.Health)
	r.POST("/api/publish", h.Publish)
	r.GET("/api/pages/:name", h.GetPage)
	r.GET("/api/pages.xlsx", h.ExportPages)
	return r
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

type publishRequest struct {
	Kind     string `json:"kind" binding:"required"`
	FileName string `json:"fileName" binding:"required"`
}

// POST /api/publish
func (h *Handler) Publish(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	kind := pipeline.Kind(req.Kind)
	if kind != pipeline.KindProject && kind != pipeline.KindCodelab {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown kind: " + req.Kind})
		return
	}

	traceID := uuid.NewString()
	job := async.Job{
		Request:     pipeline.Request{Kind: kind, FileName: req.FileName},
		SubmittedAt: time.Now().UTC(),
		TraceID:     traceID,
	}
	if err := h.queue.Enqueue(c.Request.Context(), job); err != nil {
		h.logger.Error("server.publish.enqueue_failed", "file", req.FileName, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queue unavailable"})
		return
	}

	h.logger.Info("server.publish.accepted", "kind", req.Kind, "file", req.FileName, "trace_id", traceID)
	c.JSON(http.StatusAccepted, gin.H{"traceId": traceID})
}

// GET /api/pages/:name
func (h *Handler) GetPage(c *gin.Context) {
	name := c.Param("name")
	fields, ok, err := h.store.GetDocument(c.Request.Context(), name)
	if err != nil {
		h.logger.Error("server.get_page.failed", "doc", name, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "document store unavailable"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such page document"})
		return
	}
	c.JSON(http.StatusOK, fields)
}

// GET /api/pages.xlsx
func (h *Handler) ExportPages(c *gin.Context) {
	out, err := h.exporter.ExportPagesXLSX(c.Request.Context())
	if err != nil {
		h.logger.Error("server.export.failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "export failed"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="pages.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out)
}
