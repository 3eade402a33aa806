package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ChatService processes one chat message end to end. Satisfied by
// *usecase.Dispatcher.
type ChatService interface {
	Dispatch(ctx context.Context, message string) string
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	chat ChatService
}

// NewHandler creates a new HTTP handler
func NewHandler(chat ChatService) *Handler {
	return &Handler{chat: chat}
}

// chatRequest is the body of POST /chat
type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// chatResponse is the body of a successful POST /chat
type chatResponse struct {
	Response string `json:"response"`
}

// Root returns a welcome message
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the BazarFresh assistant API",
	})
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "bazarfresh-backend",
		"version": "1.0.0",
	})
}

// Chat handles one conversational message. The dispatcher guarantees a
// complete response for every intent and failure mode, so a non-200 here
// means the request itself was bad.
func (h *Handler) Chat(c *gin.Context) {
	if h.chat == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "chat service not configured"})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "message is required"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "message is required"})
		return
	}

	response := h.chat.Dispatch(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, chatResponse{Response: response})
}
