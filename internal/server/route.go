package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *HTTPServer) setupRoutes() {
	h.router.Use(h.httpMetrics.Middleware())

	h.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "server is running",
		})
	})
	h.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := h.router.Group("/api/v1.0")
	v1.POST("/messages", h.handler.SendMessageHandler)
	v1.POST("/messages/emergency", h.handler.SendEmergencyMessageHandler)
	v1.POST("/groups/:group/messages", h.handler.SendGroupMessageHandler)
	v1.GET("/sounds", h.handler.ListSoundsHandler)
}
