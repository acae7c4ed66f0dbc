package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"creatorflow-backend-go/internal/core"
	"creatorflow-backend-go/internal/db"
	"creatorflow-backend-go/internal/middleware"
	"creatorflow-backend-go/internal/validation"
)

const healthTimeout = 3 * time.Second

// SetupRoutes configures all the application routes with their handlers and middleware.
// Global middleware (logging, recovery, CORS, metrics) is applied in main before this runs.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	store db.Store,
	authenticator middleware.Authenticator,
	userService core.UserService,
	brandService core.BrandService,
	dealService core.DealService,
) {
	authMW := middleware.NewAuthMiddleware(authenticator, logger)
	v := validation.New()

	userHandler := NewUserHandler(userService, v)
	brandHandler := NewBrandHandler(brandService, v)
	dealHandler := NewDealHandler(dealService, v)

	apiV1 := router.Group("/api/v1", authMW.VerifyToken(), authMW.ResolveUser(userService))
	{
		users := apiV1.Group("/users")
		{
			users.GET("/me", userHandler.GetCurrentUser)
			users.PUT("/me/plan", userHandler.ChangePlan)
		}

		brands := apiV1.Group("/brands")
		{
			brands.GET("", brandHandler.ListBrands)
			brands.POST("", brandHandler.CreateBrand)
			brands.GET("/:id", brandHandler.GetBrand)
			brands.PUT("/:id", brandHandler.UpdateBrand)
			brands.DELETE("/:id", brandHandler.DeleteBrand)
		}

		deals := apiV1.Group("/deals")
		{
			deals.GET("", dealHandler.ListDeals)
			deals.POST("", dealHandler.CreateDeal)
			deals.GET("/summary", dealHandler.Summary)
			deals.GET("/:id", dealHandler.GetDeal)
			deals.PUT("/:id", dealHandler.UpdateDeal)
			deals.DELETE("/:id", dealHandler.DeleteDeal)
		}
	}

	router.GET("/health", healthHandler(store, logger))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("API routes configured successfully under /api/v1, /health and /metrics.")
}

func healthHandler(store db.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "DOWN", Message: "Database unreachable"})
			return
		}
		c.JSON(http.StatusOK, HealthResponse{Status: "UP", Message: "CreatorFlow backend is healthy."})
	}
}
