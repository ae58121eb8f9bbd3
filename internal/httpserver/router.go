package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// buildRouter wires the session middleware, cart and catalog routes.
func buildRouter(logger *logrus.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	carts := &cartHandlers{
		manager:         deps.Carts,
		shipping:        deps.Shipping,
		defaultCurrency: deps.DefaultCurrency,
	}
	catalog := &catalogHandlers{catalog: deps.Catalog}

	api := router.Group("/", sessionMiddleware(deps.Sessions))

	cart := api.Group("/cart")
	cart.GET("", carts.getCart)
	cart.POST("", carts.initializeCart)
	cart.DELETE("", carts.clearCart)
	cart.POST("/refresh", carts.refreshCart)
	cart.POST("/lines", carts.addLine)
	cart.PATCH("/lines/:lineID", carts.updateLine)
	cart.DELETE("/lines/:lineID", carts.removeLine)

	api.GET("/products", catalog.listProducts)
	api.GET("/products/:handle", catalog.getProduct)
	api.GET("/collections", catalog.listCollections)
	api.GET("/collections/:handle/products", catalog.collectionProducts)

	return router
}
