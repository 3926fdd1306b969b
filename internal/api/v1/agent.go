package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type agentRequest struct {
	Message string `json:"message"`
}

// RunAgent sends a message to the task logger agent
// POST /api/agent
func (h *Handler) RunAgent(c *gin.Context) {
	if h.agent == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "agent is not configured"})
		return
	}

	var req agentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply, err := h.agent.Run(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "calls": reply.Calls})
		return
	}
	c.JSON(http.StatusOK, reply)
}
