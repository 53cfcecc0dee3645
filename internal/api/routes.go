package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/degenpilot404/realyieldagent/internal/database"
	"github.com/degenpilot404/realyieldagent/internal/runtime"
)

func SetupRoutes(router *gin.Engine, rt *runtime.Runtime, db *database.Database, logger *logrus.Logger) {
	handler := NewHandler(rt, db, logger)

	api := router.Group("/api")
	{
		api.POST("/message", handler.PostMessage)
		api.GET("/health", handler.GetHealth)
		api.GET("/preferences/:user_id", handler.GetPreferences)
		api.GET("/searches/:user_id", handler.GetRecentSearches)
	}
}
