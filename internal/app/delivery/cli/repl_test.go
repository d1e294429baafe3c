package cli

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/app/models"
	"assistant-service/internal/app/services/shared/providers"
	"assistant-service/internal/pkg/exceptions"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAssistantUsecase struct {
	mock.Mock
}

func (m *MockAssistantUsecase) Respond(ctx context.Context, text string) *models.Reply {
	return m.Called(ctx, text).Get(0).(*models.Reply)
}

func (m *MockAssistantUsecase) SetProvider(provider contracts.Provider) {
	m.Called(provider)
}

func (m *MockAssistantUsecase) ProviderName() string {
	return m.Called().String(0)
}

func (m *MockAssistantUsecase) History() []models.Message {
	return m.Called().Get(0).([]models.Message)
}

func (m *MockAssistantUsecase) SavedHistory(ctx context.Context, limit int) ([]models.Message, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Message), args.Error(1)
}

type MockMCPClient struct {
	mock.Mock
	endpoint string
}

func (m *MockMCPClient) Connect(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMCPClient) Call(ctx context.Context, method string, params map[string]interface{}) (*contracts.MCPResponse, error) {
	args := m.Called(ctx, method, params)
	return args.Get(0).(*contracts.MCPResponse), args.Error(1)
}

func (m *MockMCPClient) SendText(ctx context.Context, text string) (*contracts.MCPResponse, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contracts.MCPResponse), args.Error(1)
}

func (m *MockMCPClient) Endpoint() string {
	return m.endpoint
}

func (m *MockMCPClient) Close() error {
	return nil
}

func newTestREPL(input string, assistant *MockAssistantUsecase, clients map[string]*MockMCPClient) (*REPL, *bytes.Buffer) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	out := &bytes.Buffer{}

	options := Options{
		NewProvider: func(name string) (contracts.Provider, error) {
			if name == providers.ProviderEcho {
				return providers.NewEchoProvider(), nil
			}
			return nil, exceptions.ErrUnknownProvider(name)
		},
		NewMCPClient: func(endpoint string) contracts.MCPClient {
			return clients[endpoint]
		},
		DefaultEndpoint: "http://geo/mcp",
		HistoryLimit:    10,
	}
	return NewREPL(strings.NewReader(input), out, assistant, options, logger), out
}

func connectedClient(endpoint string) *MockMCPClient {
	client := &MockMCPClient{endpoint: endpoint}
	client.On("Connect", mock.Anything).Return(nil)
	return client
}

func TestREPL_StartupAndExit(t *testing.T) {
	assistant := new(MockAssistantUsecase)
	assistant.On("ProviderName").Return("echo")
	repl, out := newTestREPL("\n/help\n/exit\nignored\n", assistant, map[string]*MockMCPClient{
		"http://geo/mcp": connectedClient("http://geo/mcp"),
	})

	require.NoError(t, repl.Run(context.Background()))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "CLI Chatbot (provider: echo). Type /help for commands.\nMCP connected (http://geo/mcp).\n"))
	assert.Contains(t, text, "/mcp connect [endpoint]")
	assert.NotContains(t, text, "ignored")
	assistant.AssertNotCalled(t, "Respond", mock.Anything, mock.Anything)
}

func TestREPL_AutoConnectFailure(t *testing.T) {
	assistant := new(MockAssistantUsecase)
	assistant.On("ProviderName").Return("echo")
	client := &MockMCPClient{endpoint: "http://geo/mcp"}
	client.On("Connect", mock.Anything).Return(exceptions.ErrMCPInvalidEndpoint(nil, "http://geo/mcp"))
	repl, out := newTestREPL("/mcp send hi\n", assistant, map[string]*MockMCPClient{"http://geo/mcp": client})

	require.NoError(t, repl.Run(context.Background()))

	assert.Contains(t, out.String(), `MCP not connected: invalid MCP endpoint "http://geo/mcp"`)
	assert.Contains(t, out.String(), "MCP not connected. Use /mcp connect\n")
}

func TestREPL_Respond(t *testing.T) {
	assistant := new(MockAssistantUsecase)
	assistant.On("ProviderName").Return("echo")
	assistant.On("Respond", mock.Anything, "coordinates of Paris").
		Return(&models.Reply{Source: models.ReplySourceProvider, Text: "(echo#1) You said: coordinates of Paris", Notice: "[mcp error] could not geocode: upstream service unavailable"})
	repl, out := newTestREPL("  coordinates of Paris  \n", assistant, map[string]*MockMCPClient{
		"http://geo/mcp": connectedClient("http://geo/mcp"),
	})

	require.NoError(t, repl.Run(context.Background()))

	assert.Contains(t, out.String(), "you> [mcp error] could not geocode: upstream service unavailable\nbot> (echo#1) You said: coordinates of Paris\nyou> \n")
}

func TestREPL_MCPCommands(t *testing.T) {
	assistant := new(MockAssistantUsecase)
	assistant.On("ProviderName").Return("echo")
	geo := connectedClient("http://geo/mcp")
	geo.On("SendText", mock.Anything, "Paris").Return(&contracts.MCPResponse{Success: true, Raw: `{"success":true}` + "\n"}, nil)
	other := connectedClient("http://timetable/mcp")
	other.On("SendText", mock.Anything, `{"method":"timetable.next"}`).Return(nil, exceptions.ErrMCPNotConnected())

	input := strings.Join([]string{
		"/mcp send Paris",
		"/mcp connect http://timetable/mcp",
		`/mcp send {"method":"timetable.next"}`,
		"/mcp close",
		"/mcp close",
		"/mcp bogus",
	}, "\n")
	repl, out := newTestREPL(input, assistant, map[string]*MockMCPClient{
		"http://geo/mcp":       geo,
		"http://timetable/mcp": other,
	})

	require.NoError(t, repl.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "mcp> {\"success\":true}\n")
	assert.Contains(t, text, "MCP connected (http://timetable/mcp).\n")
	assert.Contains(t, text, "MCP error: MCP client is not connected\n")
	assert.Contains(t, text, "MCP closed.\n")
	assert.Contains(t, text, "you> MCP not connected.\n")
	assert.Contains(t, text, mcpUsage+"\n")
	geo.AssertExpectations(t)
	other.AssertExpectations(t)
}

func TestREPL_Provider(t *testing.T) {
	assistant := new(MockAssistantUsecase)
	assistant.On("ProviderName").Return("echo")
	assistant.On("SetProvider", mock.Anything).Return()
	repl, out := newTestREPL("/provider echo\n/provider claude\n/provider\n", assistant, map[string]*MockMCPClient{
		"http://geo/mcp": connectedClient("http://geo/mcp"),
	})

	require.NoError(t, repl.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Switched provider to: echo\n")
	assert.Contains(t, text, `Error: unknown provider "claude", expected echo or openai`)
	assert.Contains(t, text, providerUsage+"\n")
	assistant.AssertNumberOfCalls(t, "SetProvider", 1)
}

func TestREPL_History(t *testing.T) {
	at := time.Date(2025, 9, 10, 14, 5, 0, 0, time.UTC)
	assistant := new(MockAssistantUsecase)
	assistant.On("ProviderName").Return("echo")
	assistant.On("History").Return([]models.Message{
		{Role: models.RoleUser, Content: "hello", CreatedAt: at},
		{Role: models.RoleAssistant, Content: "(echo#1) You said: hello", CreatedAt: at},
	})
	assistant.On("SavedHistory", mock.Anything, 10).Return([]models.Message{}, nil)
	assistant.On("SavedHistory", mock.Anything, 3).Return([]models.Message(nil), exceptions.ErrTranscriptStore(assert.AnError, "list"))

	repl, out := newTestREPL("/history\n/history saved\n/history saved 3\n/history saved x\n", assistant, map[string]*MockMCPClient{
		"http://geo/mcp": connectedClient("http://geo/mcp"),
	})

	require.NoError(t, repl.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "[2025-09-10 14:05] user: hello\n[2025-09-10 14:05] assistant: (echo#1) You said: hello\n")
	assert.Contains(t, text, "No saved messages.\n")
	assert.Contains(t, text, "Error: "+assert.AnError.Error()+"\n")
	assert.Contains(t, text, historyUsage+"\n")
}

func TestREPL_Interrupted(t *testing.T) {
	assistant := new(MockAssistantUsecase)
	assistant.On("ProviderName").Return("echo")
	reader, writer := io.Pipe()
	defer writer.Close()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	out := &bytes.Buffer{}
	client := connectedClient("http://geo/mcp")
	repl := NewREPL(reader, out, assistant, Options{
		NewMCPClient:    func(string) contracts.MCPClient { return client },
		DefaultEndpoint: "http://geo/mcp",
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, repl.Run(ctx))
	assert.True(t, strings.HasSuffix(out.String(), "\nInterrupted.\n"))
}
