package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"taskapp/internal/adapter/http/middleware"
)

type RouterConfig struct {
	ServiceName string
	// Cors lists the allowed origins. Empty disables CORS headers.
	Cors []string
	// StaticDir is served for every unmatched GET. Empty disables it.
	StaticDir string
}

// NewRouter mounts the API under /service. metrics may be nil.
func NewRouter(container *Container, config RouterConfig, metrics middleware.RequestMetrics, logger *otelzap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(otelgin.Middleware(config.ServiceName))
	router.Use(middleware.LoggingMiddleware(logger, config.ServiceName))
	if metrics != nil {
		router.Use(middleware.MetricsMiddleware(metrics))
	}
	router.Use(gin.Recovery())
	if len(config.Cors) > 0 {
		router.Use(middleware.Cors(config.Cors))
	}

	service := router.Group("/service")

	setupAuthRoutes(service, container)
	setupManageRoutes(service, container)
	setupPublicRoutes(service, container)

	if config.StaticDir != "" {
		router.NoRoute(serveStatic(config.StaticDir))
	}

	return router
}

func setupAuthRoutes(service *gin.RouterGroup, container *Container) {
	auth := service.Group("/auth")
	{
		auth.POST("/signup", container.AuthHandler.Signup)
		auth.POST("/signin", container.AuthHandler.Signin)
	}
}

func setupManageRoutes(service *gin.RouterGroup, container *Container) {
	manage := service.Group("/manage")
	manage.Use(middleware.RequireAuth(container.Module.Auth))
	{
		manage.POST("/todo", container.TaskHandler.Create)
	}
}

func setupPublicRoutes(service *gin.RouterGroup, container *Container) {
	public := service.Group("/")
	public.Use(middleware.OptionalAuth(container.Module.Auth))
	{
		public.GET("/todo/:id", container.TaskHandler.Find)
	}
}

// serveStatic serves files under dir for unmatched GET and HEAD requests.
// A directory resolves to its index.html; anything else is a 404.
func serveStatic(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}

		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))

		info, err := os.Stat(name)
		if err == nil && info.IsDir() {
			name = filepath.Join(name, "index.html")
			info, err = os.Stat(name)
		}
		if err != nil || info.IsDir() {
			c.Status(http.StatusNotFound)
			return
		}

		file, err := os.Open(name)
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		defer file.Close() //nolint:errcheck

		http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), file)
	}
}
