package contracts

import (
	"assistant-service/internal/app/models"
	"context"
)

// MCPClient sends method calls to one MCP-style HTTP endpoint.
type MCPClient interface {
	Connect(ctx context.Context) error
	Call(ctx context.Context, method string, params map[string]interface{}) (*MCPResponse, error)
	SendText(ctx context.Context, text string) (*MCPResponse, error)
	Endpoint() string
	Close() error
}

// MCPResponse is the decoded envelope returned by the services.
type MCPResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Raw     string                 `json:"-"`
}

// Provider produces a free-text reply for prompts no intent handled.
type Provider interface {
	Name() string
	Generate(ctx context.Context, history []models.Message, prompt string) (string, error)
}

// TranscriptStore persists chat messages across sessions.
type TranscriptStore interface {
	Append(ctx context.Context, sessionID string, message models.Message) error
	List(ctx context.Context, sessionID string, limit int) ([]models.Message, error)
	Close() error
}

// AssistantUsecase routes one line of user input to a service or provider.
type AssistantUsecase interface {
	Respond(ctx context.Context, text string) *models.Reply
	SetProvider(provider Provider)
	ProviderName() string
	History() []models.Message
	SavedHistory(ctx context.Context, limit int) ([]models.Message, error)
}
