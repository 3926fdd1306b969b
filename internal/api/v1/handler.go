package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"tasklogger/internal/agent"
	"tasklogger/internal/dispatcher"
	"tasklogger/internal/store"
)

// HistoryReader lists recorded updates
type HistoryReader interface {
	ListUpdateLogs(q store.UpdateLogQuery) ([]store.UpdateLog, error)
}

// AgentRunner runs one agent conversation turn
type AgentRunner interface {
	Run(ctx context.Context, message string) (agent.Reply, error)
}

// Deps handler dependencies; History and Agent are optional
type Deps struct {
	Dispatcher *dispatcher.Dispatcher
	History    HistoryReader
	Agent      AgentRunner
	Backend    string // google / workbook
	Target     string // spreadsheet id or workbook path
	AgentModel string
}

// Handler V1 API handler
type Handler struct {
	dispatcher *dispatcher.Dispatcher
	history    HistoryReader
	agent      AgentRunner
	status     StatusResponse
}

// NewHandler creates the V1 API handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		dispatcher: deps.Dispatcher,
		history:    deps.History,
		agent:      deps.Agent,
		status: StatusResponse{
			Backend:        deps.Backend,
			Target:         deps.Target,
			HistoryEnabled: deps.History != nil,
			AgentEnabled:   deps.Agent != nil,
			AgentModel:     deps.AgentModel,
		},
	}
}

// RegisterRoutes registers the V1 API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// sheets
	router.GET("/sheets", h.ListSheets)
	router.POST("/sheets", h.CreateSheet)

	// updates
	router.POST("/updates/natural", h.LogNatural)
	router.POST("/updates/structured", h.LogStructured)
	router.GET("/updates", h.ListUpdates)

	router.POST("/agent", h.RunAgent)
}
