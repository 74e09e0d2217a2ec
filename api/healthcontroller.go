package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterHealthRoutes registers health and metrics endpoints.
func RegisterHealthRoutes(r *gin.Engine, d *Deps) {
	r.GET("/api/health", d.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (d *Deps) handleHealth(c *gin.Context) {
	_, hasComparison := d.Store.Get()
	c.JSON(http.StatusOK, gin.H{
		"status":            "healthy",
		"ai_available":      d.Explainer.Available(),
		"chatbot_available": d.Chatbot.Available(),
		"has_comparison":    hasComparison,
	})
}
