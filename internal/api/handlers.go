package api

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/degenpilot404/realyieldagent/internal/database"
	"github.com/degenpilot404/realyieldagent/internal/models"
	"github.com/degenpilot404/realyieldagent/internal/runtime"
)

type Handler struct {
	runtime *runtime.Runtime
	db      *database.Database
	logger  *logrus.Logger
}

type MessageRequest struct {
	Text           string `json:"text" binding:"required"`
	UserID         string `json:"user_id" binding:"required"`
	ConversationID string `json:"conversation_id"`
	Source         string `json:"source"`
}

func NewHandler(rt *runtime.Runtime, db *database.Database, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		runtime: rt,
		db:      db,
		logger:  logger,
	}
}

// PostMessage runs one conversational turn and returns the reply.
func (h *Handler) PostMessage(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text and user_id are required"})
		return
	}

	reply, err := h.runtime.HandleMessage(c.Request.Context(), models.Message{
		Text:           req.Text,
		UserID:         req.UserID,
		ConversationID: req.ConversationID,
		Source:         req.Source,
	}, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to handle message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to handle message"})
		return
	}

	c.JSON(http.StatusOK, reply)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetPreferences returns the saved search for a user.
func (h *Handler) GetPreferences(c *gin.Context) {
	userID := c.Param("user_id")

	stored, err := h.db.GetPreference(userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get preferences")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get preferences"})
		return
	}
	if stored == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No saved preferences for user"})
		return
	}

	c.JSON(http.StatusOK, stored)
}

// GetRecentSearches returns the newest audit log entries for a user.
func (h *Handler) GetRecentSearches(c *gin.Context) {
	userID := c.Param("user_id")

	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 10
	}

	searches, err := h.db.GetRecentSearches(userID, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get recent searches")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get recent searches"})
		return
	}

	c.JSON(http.StatusOK, searches)
}
