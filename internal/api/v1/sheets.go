package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasklogger/internal/sheets"
)

type sheetsResponse struct {
	Sheets []string `json:"sheets"`
}

type createSheetRequest struct {
	Name string `json:"name"`
}

// ListSheets sheet titles of the spreadsheet
// GET /api/sheets
func (h *Handler) ListSheets(c *gin.Context) {
	titles, err := h.dispatcher.Logger().Titles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if titles == nil {
		titles = []string{}
	}
	c.JSON(http.StatusOK, sheetsResponse{Sheets: titles})
}

// CreateSheet provisions a sheet with the header row
// POST /api/sheets
func (h *Handler) CreateSheet(c *gin.Context) {
	var req createSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.dispatcher.Logger().CreateSheet(c.Request.Context(), req.Name)
	var exists *sheets.SheetExistsError
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"name": req.Name})
	case errors.Is(err, sheets.ErrProvisionUnsupported):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	case errors.Is(err, sheets.ErrEmptySheetName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &exists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
