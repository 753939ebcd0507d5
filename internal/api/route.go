package api

import (
	"ContentStudio/internal/api/middleware"
	"ContentStudio/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		freshnessGroup := apiGroup.Group("/freshness")
		{
			freshnessGroup.POST("/posts", group.FreshnessHandler.RecordPost)
			freshnessGroup.POST("/training", group.FreshnessHandler.RecordTraining)
			freshnessGroup.GET("/check/:content_type", group.FreshnessHandler.Check)
			freshnessGroup.GET("/status", group.FreshnessHandler.Statuses)
			freshnessGroup.GET("/dashboard", group.FreshnessHandler.Dashboard)
			freshnessGroup.GET("/alerts/:content_type", group.FreshnessHandler.Alerts)
			freshnessGroup.PUT("/:content_type/enable", group.FreshnessHandler.Enable)
			freshnessGroup.PUT("/:content_type/disable", group.FreshnessHandler.Disable)
		}

		memeGroup := apiGroup.Group("/memes")
		{
			memeGroup.POST("", group.MemeHandler.Generate)
			memeGroup.GET("/layers", group.MemeHandler.Layers)
			memeGroup.GET("/templates", group.MemeHandler.Templates)
		}

		generateGroup := apiGroup.Group("/generate")
		{
			generateGroup.POST("", group.GenerateHandler.Generate)
		}

		alertGroup := apiGroup.Group("/alerts")
		{
			alertGroup.GET("/ws", group.WsHandler.Connect)
		}
	}

	return r
}
