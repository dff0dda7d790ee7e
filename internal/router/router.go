package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pcbuild/internal/auth"
	"pcbuild/internal/build"
	"pcbuild/internal/logging"
	"pcbuild/internal/middleware"
)

type Options struct {
	Logger *zap.Logger
	// CORSOrigins lists allowed browser origins. Empty allows any origin
	// without credentials.
	CORSOrigins []string
	// JWTSecret enables the bearer-token gate on backend routes when set.
	JWTSecret string
}

func NewRouter(h *build.Handler, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(logging.GinRecovery(logger), logging.GinLogger(logger))
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var guard []gin.HandlerFunc
	if opts.JWTSecret != "" {
		guard = append(guard,
			middleware.AuthMiddleware([]byte(opts.JWTSecret)),
			middleware.RequireScope(auth.ScopeGenerate),
		)
	}
	h.Register(r.Group("/build"), guard...)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition", "X-Report-URL"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
