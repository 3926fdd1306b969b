package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse service status
type StatusResponse struct {
	Backend        string `json:"backend"`
	Target         string `json:"target"`
	HistoryEnabled bool   `json:"historyEnabled"`
	AgentEnabled   bool   `json:"agentEnabled"`
	AgentModel     string `json:"agentModel,omitempty"`
}

// GetStatus service status
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.status)
}
