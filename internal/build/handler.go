package build

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pcbuild/internal/config"
	"pcbuild/internal/normalize"
)

const (
	msgGenerateFailed = "An unexpected error occurred while generating your PC build. Please check the configuration and try again."
	msgUpgradeFailed  = "An unexpected error occurred while generating upgrade recommendations. Please try again."
	msgBuildRequired  = "Build response is required."
	msgPDFFailed      = "Failed to generate PDF. Please try again later."
)

// ReportStore receives a copy of every rendered report.
type ReportStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type HandlerConfig struct {
	// Production hides error detail from responses.
	Production bool
	Backend    config.BackendStatus
	Store      ReportStore
}

type Handler struct {
	service *Service
	logger  *zap.Logger
	cfg     HandlerConfig
	now     func() time.Time
}

func NewHandler(service *Service, logger *zap.Logger, cfg HandlerConfig) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger, cfg: cfg, now: time.Now}
}

// Register mounts the build routes on g. guard, when given, wraps the
// routes that call the backend.
func (h *Handler) Register(g *gin.RouterGroup, guard ...gin.HandlerFunc) {
	g.GET("/health", h.Health)
	g.GET("/config-check", h.ConfigCheck)

	backend := g.Group("", guard...)
	backend.POST("/generate", h.Generate)
	backend.POST("/upgrade", h.Upgrade)

	g.POST("/download/pdf", h.DownloadPDF)
	g.POST("/download/text", h.DownloadText)
}

// --------------------------------------------------
// POST /build/generate
// --------------------------------------------------
func (h *Handler) Generate(c *gin.Context) {
	var req BuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgPreferencesRequired})
		return
	}

	resp, err := h.service.GenerateBuild(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err, msgGenerateFailed)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// --------------------------------------------------
// POST /build/upgrade
// --------------------------------------------------
func (h *Handler) Upgrade(c *gin.Context) {
	var req UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgCurrentBuild})
		return
	}

	resp, err := h.service.SuggestUpgrades(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err, msgUpgradeFailed)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// --------------------------------------------------
// POST /build/download/pdf
// --------------------------------------------------
func (h *Handler) DownloadPDF(c *gin.Context) {
	build, ok := h.bindBuild(c)
	if !ok {
		return
	}

	pdf, err := h.service.RenderPDF(c.Request.Context(), build)
	if err != nil {
		h.logger.Error("pdf download failed", zap.String("build_id", build.BuildID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgPDFFailed})
		return
	}

	h.sendFile(c, build, "pdf", "application/pdf", pdf)
}

// --------------------------------------------------
// POST /build/download/text
// --------------------------------------------------
func (h *Handler) DownloadText(c *gin.Context) {
	build, ok := h.bindBuild(c)
	if !ok {
		return
	}

	text := h.service.RenderText(build)
	h.sendFile(c, build, "txt", "text/plain; charset=utf-8", []byte(text))
}

// --------------------------------------------------
// GET /build/health
// --------------------------------------------------
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "Healthy",
		"timestamp": h.now().UTC(),
	})
}

// --------------------------------------------------
// GET /build/config-check
// --------------------------------------------------
func (h *Handler) ConfigCheck(c *gin.Context) {
	c.JSON(http.StatusOK, h.cfg.Backend)
}

// bindBuild reads a BuildResponse from the body. Client-supplied builds go
// through the same normalization as backend output, so list members sent
// as comma-separated strings are accepted.
func (h *Handler) bindBuild(c *gin.Context) (*BuildResponse, bool) {
	body, err := c.GetRawData()
	if err != nil || strings.TrimSpace(string(body)) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgBuildRequired})
		return nil, false
	}

	build, err := normalize.Parse[BuildResponse](string(body), ResponseSchema)
	if err != nil {
		h.logger.Warn("invalid build in download request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": msgBuildRequired})
		return nil, false
	}
	if build.Currency == "" {
		build.Currency = DefaultCurrency
	}
	return build, true
}

func (h *Handler) sendFile(c *gin.Context, build *BuildResponse, ext, contentType string, body []byte) {
	filename := ReportFilename(build.BuildName, ext, h.now())

	if h.cfg.Store != nil && build.BuildID != "" {
		key := ReportKey(build.BuildID, filename)
		if url, err := h.cfg.Store.Upload(c.Request.Context(), key, body, contentType); err != nil {
			h.logger.Warn("report export failed", zap.String("key", key), zap.Error(err))
		} else if url != "" {
			c.Header("X-Report-URL", url)
		}
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, contentType, body)
}

// fail maps service errors to responses. Only validation messages reach
// the caller verbatim.
func (h *Handler) fail(c *gin.Context, err error, generic string) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		h.logger.Warn("invalid request", zap.String("field", verr.Field), zap.String("error", verr.Msg))
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
		return
	}

	h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))

	body := gin.H{"error": generic}
	if !h.cfg.Production {
		body["detail"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// ReportFilename returns PC_Build_{name}_{YYYYMMDD}.{ext}.
func ReportFilename(name, ext string, now time.Time) string {
	return fmt.Sprintf("PC_Build_%s_%s.%s", safeName(name), now.UTC().Format("20060102"), ext)
}

// ReportKey is the object key under which an exported report is stored.
func ReportKey(buildID, filename string) string {
	return "reports/" + safeName(buildID) + "/" + filename
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Build"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == 0x7f:
			return -1
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		default:
			return r
		}
	}, s)
}
