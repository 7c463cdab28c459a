package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/anesthesia-api/internal/handler"
	prometheusHandler "github.com/jwalitptl/anesthesia-api/internal/handler/prometheus"
	"github.com/jwalitptl/anesthesia-api/internal/middleware"
)

// Handler registers routes on a router group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine     *gin.Engine
	auth       *middleware.AuthMiddleware
	authH      PublicHandler
	hospitalH  Handler
	serviceH   Handler
	dashboardH Handler
	fileH      Handler
	promH      *prometheusHandler.Handler
}

// PublicHandler additionally owns routes that skip the token check.
type PublicHandler interface {
	Handler
	RegisterPublicRoutes(*gin.RouterGroup)
}

type Config struct {
	CORS      middleware.CORSConfig
	RateLimit middleware.RateLimiterConfig
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH PublicHandler,
	hospitalH Handler,
	serviceH Handler,
	dashboardH Handler,
	fileH Handler,
	promH *prometheusHandler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:     engine,
		auth:       auth,
		authH:      authH,
		hospitalH:  hospitalH,
		serviceH:   serviceH,
		dashboardH: dashboardH,
		fileH:      fileH,
		promH:      promH,
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		promH.Middleware(),
	)

	engine.Use(middleware.CORS(config.CORS))

	rateLimiter := middleware.NewRateLimiter(config.RateLimit)
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api")

	api.GET("/health", handler.HealthCheck)
	api.GET("/metrics", r.promH.Handler())

	// Public routes
	r.authH.RegisterPublicRoutes(api)

	// Protected routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.authH.RegisterRoutes(protected)
	r.hospitalH.RegisterRoutes(protected)
	r.serviceH.RegisterRoutes(protected)
	r.dashboardH.RegisterRoutes(protected)
	r.fileH.RegisterRoutes(protected)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
