package routes

import (
	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/handlers"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/middleware"
)

// RegisterRoutes registers the read API, the media streaming endpoint and the
// token-guarded admin API
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	adminToken string,
) {
	appHandlers.MediaHandler.RegisterRoutes(ginRouter)

	api := ginRouter.Group("/api")
	{
		appHandlers.ContentHandler.RegisterRoutes(api)
		appHandlers.ImageHandler.RegisterRoutes(api)
		appHandlers.ContactHandler.RegisterRoutes(api)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminTokenMiddleware(adminToken))
	{
		appHandlers.ImageHandler.RegisterAdminRoutes(admin)
		appHandlers.MediaHandler.RegisterAdminRoutes(admin)
		appHandlers.CollectionHandler.RegisterAdminRoutes(admin)
		appHandlers.ContactHandler.RegisterAdminRoutes(admin)
	}

	if adminToken == "" {
		logger.Warn("ADMIN_TOKEN is not set; the admin API will reject every request")
	}
}
