package restapi

import (
	_ "embed"
	"fmt"
	"net/http"
	"net/http/pprof"

	"points_checker/internal/app/port"
	"points_checker/internal/infrastructure/configloader"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

//go:embed docs/swagger.yaml
var swaggerSpec []byte

const swaggerSpecPath = "/docs/swagger.yaml"

// RouterDeps is everything SetupRouter wires together.
type RouterDeps struct {
	Config   *configloader.Config
	Batches  port.BatchService
	Sessions port.SessionStore
	Logger   port.Logger
	Zap      *zap.Logger
}

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
func SetupRouter(d RouterDeps) (*gin.Engine, error) {
	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	router := gin.New()
	router.Use(cors.New(corsConfig(d.Config.Server.AllowedOrigins)))
	router.Use(ZapLoggerMiddleware(d.Zap))
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(tmpl)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": d.Sessions.Count()})
	})

	sessions := SessionMiddleware(d.Sessions, SessionCookie{
		Name:   d.Config.Session.CookieName,
		MaxAge: d.Config.SessionTTL(),
		Secure: d.Config.Session.CookieSecure,
	})

	pages := NewPageHandler(d.Batches, d.Logger)
	web := router.Group("/", sessions)
	{
		web.GET("/", pages.Index)
		web.POST("/check", pages.Check)
		web.POST("/modal/close", pages.CloseModal)
	}

	api := NewPointsHandler(d.Batches, d.Logger)
	apiV1 := router.Group("/api/v1", sessions)
	{
		apiV1.POST("/batches", api.SubmitBatchHandler)
		apiV1.GET("/batches/current", api.GetCurrentBatchHandler)
		apiV1.GET("/batches/current/events", api.StreamBatchHandler)
		apiV1.POST("/modal/close", api.CloseModalHandler)
	}

	if d.Config.Metrics.Enabled {
		router.GET(d.Config.Metrics.Path, gin.WrapH(promhttp.Handler()))
		d.Logger.Info("Prometheus metrics endpoint enabled", "path", d.Config.Metrics.Path)
	}

	if d.Config.Swagger.Enabled {
		router.GET(swaggerSpecPath, func(c *gin.Context) {
			c.Data(http.StatusOK, "application/yaml", swaggerSpec)
		})
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(swaggerSpecPath)))
		d.Logger.Info("Swagger UI enabled", "path", "/swagger/index.html")
	}

	if d.Config.Debug.PprofEnabled {
		registerPprof(router)
		d.Logger.Warn("Pprof endpoints enabled under /debug/pprof")
	}

	return router, nil
}

// corsConfig allows any origin when none are configured. Cookies are only
// accepted cross-origin from an explicit allow list.
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func registerPprof(router *gin.Engine) {
	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.POST("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		pprofRouter.GET("/block", gin.WrapH(pprof.Handler("block")))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
		pprofRouter.GET("/mutex", gin.WrapH(pprof.Handler("mutex")))
		pprofRouter.GET("/threadcreate", gin.WrapH(pprof.Handler("threadcreate")))
	}
}
