package router

import (
	"net/http"

	apphttp "lead_scoring_backend/internal/http"
	"lead_scoring_backend/internal/http/middleware"
	"lead_scoring_backend/platform/httpkit"
	"lead_scoring_backend/platform/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const rateLimitBurstFactor = 2

// New builds the engine: shared middleware, health and metrics endpoints,
// then every module's routes on the rate limited root group.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(middleware.RequestTimer())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(httpkit.CORS(app.Config))

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	root := engine.Group("/")
	if rps := app.Config.GetRateLimitRPS(); rps > 0 {
		burst := max(1, int(rps)*rateLimitBurstFactor)
		limiter := httpkit.NewIPRateLimiter(rate.Limit(rps), burst, app.Logger)
		root.Use(limiter.RateLimit())
	}

	routerCtx := &apphttp.RouterContext{
		Engine: engine,
		Root:   root,
		Config: app.Config,
	}
	for _, module := range app.Modules {
		module.RegisterRoutes(routerCtx)
		app.Logger.Info("registered module routes", "module", module.Name())
	}

	return engine
}
