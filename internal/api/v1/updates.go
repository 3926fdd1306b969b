package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasklogger/internal/model"
	"tasklogger/internal/store"
)

type naturalRequest struct {
	Prompt string `json:"prompt"`
}

type structuredRequest struct {
	Name  string         `json:"name"`
	Entry map[string]any `json:"entry"`
}

type updatesResponse struct {
	Items []store.UpdateLog `json:"items"`
}

// LogNatural logs a natural language update
// POST /api/updates/natural
//
// Both result statuses are answered with 200; the body carries the status.
func (h *Handler) LogNatural(c *gin.Context) {
	var req naturalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badResult(c, err)
		return
	}
	c.JSON(http.StatusOK, h.dispatcher.Handle(c.Request.Context(), req.Prompt))
}

// LogStructured logs an entry keyed by column name
// POST /api/updates/structured
func (h *Handler) LogStructured(c *gin.Context) {
	var req structuredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badResult(c, err)
		return
	}

	fields := make(map[string]string, len(req.Entry))
	for k, v := range req.Entry {
		if v != nil {
			fields[k] = fmt.Sprint(v)
		}
	}
	c.JSON(http.StatusOK, h.dispatcher.LogStructured(c.Request.Context(), req.Name, fields))
}

// ListUpdates recorded updates, newest first
// GET /api/updates?sheet=&limit=
func (h *Handler) ListUpdates(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "update history is disabled"})
		return
	}

	q := store.UpdateLogQuery{SheetName: c.Query("sheet")}
	if s := c.Query("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		q.Limit = limit
	}

	items, err := h.history.ListUpdateLogs(q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []store.UpdateLog{}
	}
	c.JSON(http.StatusOK, updatesResponse{Items: items})
}

func badResult(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, model.Failure(fmt.Errorf("invalid request body: %w", err)))
}
