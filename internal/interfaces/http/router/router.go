package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/smartsales/backend/internal/domain/partner"
	"github.com/smartsales/backend/internal/infrastructure/auth"
	"github.com/smartsales/backend/internal/infrastructure/config"
	"github.com/smartsales/backend/internal/interfaces/http/handler"
	"github.com/smartsales/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Auth    *handler.AuthHandler
	Client  *handler.ClientHandler
	Product *handler.ProductHandler
	Order   *handler.OrderHandler
	Search  *handler.SearchHandler
	System  *handler.SystemHandler
}

// New builds the gin engine with all middleware and routes mounted.
// Token endpoints are public; everything else under /api requires a
// valid access token.
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) (*gin.Engine, error) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	registerValidators()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.RequestLogger(log),
	)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.GET("/health", h.System.Health)

	token := engine.Group("/api/token")
	{
		token.POST("/register", h.Auth.Register)
		token.POST("/login", h.Auth.Login)
		token.POST("/refresh-token", h.Auth.Refresh)
	}

	api := engine.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(jwtService, log))
	{
		clients := api.Group("/clients")
		{
			clients.GET("", h.Client.List)
			clients.POST("", h.Client.Create)
			clients.GET("/:id", h.Client.Get)
			clients.PATCH("/:id", h.Client.Update)
			clients.DELETE("/:id", h.Client.Delete)
		}

		products := api.Group("/products")
		{
			products.GET("", h.Product.List)
			products.POST("", h.Product.Create)
			products.GET("/:id", h.Product.Get)
			products.PATCH("/:id", h.Product.Update)
			products.POST("/:id/images", h.Product.UploadImages)
			products.DELETE("/:id", h.Product.Delete)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", h.Order.List)
			orders.POST("", h.Order.Create)
			orders.GET("/:id", h.Order.Get)
			orders.PUT("/:id", h.Order.Update)
			orders.DELETE("/:id", h.Order.Delete)
		}

		api.GET("/search", h.Search.Search)
	}

	return engine, nil
}

// registerValidators adds custom binding validators
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
			return partner.IsValidCPF(fl.Field().String())
		})
	}
}
