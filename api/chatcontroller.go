package api

import (
	"errors"
	"net/http"
	"strings"

	"doccompare/assistant"

	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers chat endpoints.
func RegisterChatRoutes(r *gin.Engine, d *Deps) {
	g := r.Group("/api/chat")
	g.POST("", d.handleChat)
	g.POST("/clear", d.handleChatClear)
}

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Question string `json:"question"`
}

// handleChat answers a question about the latest comparison
func (d *Deps) handleChat(c *gin.Context) {
	if !d.Chatbot.Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chatbot is not available: configure COHERE_API_KEY or OPENAI_API_KEY"})
		return
	}

	res, err := d.Store.Latest()
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": assistant.ErrEmptyQuestion.Error()})
		return
	}

	answer, err := d.Chatbot.Ask(c.Request.Context(), res, question)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, assistant.ErrEmptyQuestion) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"question": question,
		"answer":   answer,
	})
}

// handleChatClear drops the conversation history
func (d *Deps) handleChatClear(c *gin.Context) {
	if d.Chatbot != nil {
		d.Chatbot.Clear()
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "conversation cleared"})
}
