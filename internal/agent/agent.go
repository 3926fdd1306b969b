package agent

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"tasklogger/internal/dispatcher"
	"tasklogger/internal/model"
	"tasklogger/internal/store"
)

// DefaultMaxTurns model round trips allowed per message
const DefaultMaxTurns = 5

// ErrTooManyTurns the model kept calling tools past the turn limit
var ErrTooManyTurns = errors.New("agent did not finish within the turn limit")

// Generator content generation API; satisfied by (*genai.Client).Models
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ToolCall one executed tool call
type ToolCall struct {
	Name   string         `json:"name"`
	Args   map[string]any `json:"args"`
	Result model.Result   `json:"result"`
}

// Reply final model answer and the tools it ran
type Reply struct {
	Text  string     `json:"text"`
	Calls []ToolCall `json:"calls"`
}

// Agent task logger agent driving the dispatcher through function calls
type Agent struct {
	gen        Generator
	model      string
	dispatcher *dispatcher.Dispatcher
	log        *zap.Logger
	maxTurns   int
}

// New creates an agent on top of gen.
func New(gen Generator, modelName string, d *dispatcher.Dispatcher, log *zap.Logger) *Agent {
	if log == nil {
		log = zap.NewNop()
	}
	return &Agent{
		gen:        gen,
		model:      modelName,
		dispatcher: d.As(store.SourceAgent),
		log:        log,
		maxTurns:   DefaultMaxTurns,
	}
}

// NewGemini creates an agent backed by the Gemini API.
func NewGemini(ctx context.Context, apiKey, modelName string, d *dispatcher.Dispatcher, log *zap.Logger) (*Agent, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return New(client.Models, modelName, d, log), nil
}

// Model returns the model name.
func (a *Agent) Model() string {
	return a.model
}

// Run sends message to the model and executes the tool calls it asks for
// until it answers with text.
func (a *Agent) Run(ctx context.Context, message string) (Reply, error) {
	var reply Reply

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(Instruction, genai.RoleUser),
		Tools:             []*genai.Tool{{FunctionDeclarations: declarations()}},
	}
	contents := []*genai.Content{genai.NewContentFromText(message, genai.RoleUser)}

	for turn := 0; turn < a.maxTurns; turn++ {
		resp, err := a.gen.GenerateContent(ctx, a.model, contents, config)
		if err != nil {
			return reply, fmt.Errorf("generate content: %w", err)
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			reply.Text = resp.Text()
			return reply, nil
		}

		if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
			contents = append(contents, resp.Candidates[0].Content)
		}

		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			res := a.invoke(ctx, call)
			a.log.Info("tool call",
				zap.String("tool", call.Name),
				zap.String("status", res.Status),
				zap.Int("turn", turn))
			reply.Calls = append(reply.Calls, ToolCall{Name: call.Name, Args: call.Args, Result: res})

			part := genai.NewPartFromFunctionResponse(call.Name, resultMap(res))
			part.FunctionResponse.ID = call.ID
			parts = append(parts, part)
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}

	return reply, ErrTooManyTurns
}

func (a *Agent) invoke(ctx context.Context, call *genai.FunctionCall) model.Result {
	switch call.Name {
	case ToolHandleNaturalLanguage:
		prompt, _ := call.Args["prompt"].(string)
		return a.dispatcher.Handle(ctx, prompt)
	case ToolLogDailyUpdate:
		name, _ := call.Args["name"].(string)
		return a.dispatcher.LogStructured(ctx, name, entryFields(call.Args["entry"]))
	default:
		return model.Failure(fmt.Errorf("unknown tool %q", call.Name))
	}
}
