// Package router assembles the gin engine: middleware stack, public
// customer routes, and JWT-protected admin routes.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/returnhub/backend/internal/infrastructure/auth"
	"github.com/returnhub/backend/internal/infrastructure/config"
	"github.com/returnhub/backend/internal/infrastructure/logger"
	"github.com/returnhub/backend/internal/interfaces/http/handler"
	"github.com/returnhub/backend/internal/interfaces/http/middleware"
)

// Handlers groups the HTTP handlers the router wires up
type Handlers struct {
	System       *handler.SystemHandler
	Auth         *handler.AuthHandler
	Public       *handler.PublicHandler
	Product      *handler.ProductHandler
	Attribute    *handler.AttributeHandler
	Variation    *handler.VariationHandler
	AdminReturns *handler.AdminReturnHandler
	Audit        *handler.AuditHandler
}

// Deps carries the router's cross-cutting dependencies
type Deps struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist
}

// New builds the engine with the full middleware stack and all routes
func New(deps Deps, h Handlers) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(deps.Config.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(deps.Config.HTTP.TrustedProxies); err != nil {
			deps.Logger.Warn("failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(middleware.CORS(middleware.CORSFromHTTPConfig(deps.Config.HTTP)))
	engine.Use(middleware.BodyLimit(deps.Config.HTTP.MaxBodySize))

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")

	// Customer-facing routes, no authentication
	api.POST("/returns", h.Public.SubmitReturn)
	api.GET("/returns/track/:number", h.Public.Track)
	api.POST("/returns/images", h.Public.UploadImage)
	api.POST("/products/:id/options", h.Public.AvailableOptions)
	api.POST("/products/:id/resolve", h.Public.ResolveVariation)

	// Auth endpoints that must work without a valid access token
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)

	// Everything below requires a valid admin token
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(middleware.AuthConfig{
		JWTService: deps.JWTService,
		Blacklist:  deps.Blacklist,
		Logger:     deps.Logger,
	}))

	admin.POST("/auth/logout", h.Auth.Logout)
	admin.GET("/auth/profile", h.Auth.Profile)
	admin.PUT("/auth/password", h.Auth.ChangePassword)

	admin.POST("/products", h.Product.Create)
	admin.GET("/products", h.Product.List)
	admin.GET("/products/:id", h.Product.Get)
	admin.PUT("/products/:id", h.Product.Update)
	admin.DELETE("/products/:id", h.Product.Delete)
	admin.POST("/products/:id/attributes", h.Product.AttachAttribute)
	admin.DELETE("/products/:id/attributes/:attribute_id", h.Product.DetachAttribute)

	admin.POST("/products/:id/variations", h.Variation.Create)
	admin.GET("/products/:id/variations", h.Variation.ListByProduct)
	admin.PUT("/variations/:variation_id", h.Variation.Update)
	admin.DELETE("/variations/:variation_id", h.Variation.Delete)

	admin.POST("/attributes", h.Attribute.Create)
	admin.GET("/attributes", h.Attribute.List)
	admin.GET("/attributes/:id", h.Attribute.Get)
	admin.DELETE("/attributes/:id", h.Attribute.Delete)
	admin.POST("/attributes/:id/options", h.Attribute.AddOption)
	admin.DELETE("/attributes/:id/options/:option_id", h.Attribute.RemoveOption)

	admin.GET("/returns", h.AdminReturns.List)
	admin.GET("/returns/summary", h.AdminReturns.Summary)
	admin.GET("/returns/:id", h.AdminReturns.Get)
	admin.PUT("/returns/:id/status", h.AdminReturns.UpdateStatus)
	admin.POST("/returns/:id/notes", h.AdminReturns.AddNote)
	admin.POST("/returns/:id/notifications/resend", h.AdminReturns.ResendNotification)
	admin.DELETE("/returns/:id", h.AdminReturns.Delete)

	admin.GET("/audit-logs", h.Audit.List)

	return engine
}
