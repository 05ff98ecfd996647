package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vmackland-source/TGRoom/controllers"
)

// RegisterRoutes wires the three API endpoints plus health and metrics.
// Method-not-allowed handling is enabled so non-POST requests to the API
// endpoints get a 405 rather than gin's default 404.
func RegisterRoutes(r *gin.Engine, cc *controllers.CheckoutController, wc *controllers.WebhookController, uc *controllers.UploadController) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	api := r.Group("/api")
	api.POST("/checkout", cc.CreateCheckout)
	api.POST("/webhook", wc.HandleWebhook)
	api.POST("/upload", uc.HandleUpload)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
