package cli

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/app/models"
	"assistant-service/internal/pkg/exceptions"
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	promptUser = "you> "
	promptBot  = "bot> "
	promptMCP  = "mcp> "

	mcpUsage      = "Usage: /mcp connect [endpoint] | /mcp send <text> | /mcp close"
	providerUsage = "Usage: /provider <echo|openai>"
	historyUsage  = "Usage: /history [saved [n]]"
)

const helpText = `Commands:
  /help
  /exit | /quit
  /provider <name>         (echo|openai)
  /mcp connect [endpoint]  connect MCP client
  /mcp send <text>         send a JSON request or a geocode query via MCP
  /mcp close               close MCP connection
  /history                 show this session
  /history saved [n]       show the last n saved messages of all sessions`

type Options struct {
	NewProvider     func(name string) (contracts.Provider, error)
	NewMCPClient    func(endpoint string) contracts.MCPClient
	DefaultEndpoint string
	HistoryLimit    int
}

// REPL reads one command or question per line from in and writes replies to
// out. Logging goes to Log, never to out.
type REPL struct {
	Assistant contracts.AssistantUsecase
	Options   Options
	Log       *logrus.Logger
	in        io.Reader
	out       io.Writer
	mcp       contracts.MCPClient
}

func NewREPL(in io.Reader, out io.Writer, assistant contracts.AssistantUsecase, options Options, logger *logrus.Logger) *REPL {
	if options.HistoryLimit <= 0 {
		options.HistoryLimit = 20
	}
	return &REPL{
		Assistant: assistant,
		Options:   options,
		Log:       logger,
		in:        in,
		out:       out,
	}
}

// Run loops until /exit, end of input or ctx cancellation. It returns only
// read errors.
func (r *REPL) Run(ctx context.Context) error {
	r.printf("CLI Chatbot (provider: %s). Type /help for commands.\n", r.Assistant.ProviderName())
	r.autoConnect(ctx)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go r.scan(ctx, lines, readErr)

	for {
		r.printf("%s", promptUser)
		select {
		case <-ctx.Done():
			r.printf("\nInterrupted.\n")
			return nil
		case err := <-readErr:
			r.printf("\n")
			return err
		case line := <-lines:
			if !r.handle(ctx, strings.TrimSpace(line)) {
				r.closeMCP()
				return nil
			}
		}
	}
}

func (r *REPL) scan(ctx context.Context, lines chan<- string, readErr chan<- error) {
	scanner := bufio.NewScanner(r.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	readErr <- scanner.Err()
}

// handle reports whether the loop should keep going.
func (r *REPL) handle(ctx context.Context, line string) bool {
	command, rest := splitCommand(line)

	switch command {
	case "":
		return true
	case "/exit", "/quit":
		return false
	case "/help":
		r.printf("%s\n", helpText)
	case "/mcp":
		r.handleMCP(ctx, rest)
	case "/provider":
		r.handleProvider(rest)
	case "/history":
		r.handleHistory(ctx, rest)
	default:
		reply := r.Assistant.Respond(ctx, line)
		if reply.Notice != "" {
			r.printf("%s\n", reply.Notice)
		}
		r.printf("%s%s\n", promptBot, reply.Text)
	}
	return true
}

func (r *REPL) autoConnect(ctx context.Context) {
	client := r.Options.NewMCPClient(r.Options.DefaultEndpoint)
	if err := client.Connect(ctx); err != nil {
		r.Log.WithError(err).Debug("REPL.autoConnect failed")
		r.printf("MCP not connected: %s (start the geo service or set CHAT_GEO_ENDPOINT)\n", exceptions.ClientMessage(err))
		return
	}
	r.mcp = client
	r.printf("MCP connected (%s).\n", client.Endpoint())
}

func (r *REPL) handleMCP(ctx context.Context, args string) {
	sub, rest := splitCommand(args)

	switch sub {
	case "connect":
		endpoint := rest
		if endpoint == "" {
			endpoint = r.Options.DefaultEndpoint
		}
		client := r.Options.NewMCPClient(endpoint)
		if err := client.Connect(ctx); err != nil {
			r.printf("MCP error: %s\n", exceptions.ClientMessage(err))
			return
		}
		r.closeMCP()
		r.mcp = client
		r.printf("MCP connected (%s).\n", client.Endpoint())
	case "send":
		if r.mcp == nil {
			r.printf("MCP not connected. Use /mcp connect\n")
			return
		}
		resp, err := r.mcp.SendText(ctx, rest)
		if err != nil {
			r.printf("MCP error: %s\n", exceptions.ClientMessage(err))
			return
		}
		r.printf("%s%s\n", promptMCP, strings.TrimSpace(resp.Raw))
	case "close":
		if r.mcp == nil {
			r.printf("MCP not connected.\n")
			return
		}
		r.closeMCP()
		r.printf("MCP closed.\n")
	default:
		r.printf("%s\n", mcpUsage)
	}
}

func (r *REPL) handleProvider(name string) {
	if name == "" {
		r.printf("%s\n", providerUsage)
		return
	}
	provider, err := r.Options.NewProvider(name)
	if err != nil {
		r.printf("Error: %s\n", exceptions.ClientMessage(err))
		return
	}
	r.Assistant.SetProvider(provider)
	r.printf("Switched provider to: %s\n", name)
}

func (r *REPL) handleHistory(ctx context.Context, args string) {
	if args == "" {
		r.printMessages(r.Assistant.History(), "No messages yet.")
		return
	}

	sub, rest := splitCommand(args)
	if sub != "saved" {
		r.printf("%s\n", historyUsage)
		return
	}
	limit := r.Options.HistoryLimit
	if rest != "" {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 {
			r.printf("%s\n", historyUsage)
			return
		}
		limit = n
	}

	messages, err := r.Assistant.SavedHistory(ctx, limit)
	if err != nil {
		r.printf("Error: %s\n", exceptions.ClientMessage(err))
		return
	}
	r.printMessages(messages, "No saved messages.")
}

func (r *REPL) printMessages(messages []models.Message, empty string) {
	if len(messages) == 0 {
		r.printf("%s\n", empty)
		return
	}
	for _, message := range messages {
		r.printf("[%s] %s: %s\n", message.CreatedAt.Format("2006-01-02 15:04"), message.Role, message.Content)
	}
}

func (r *REPL) closeMCP() {
	if r.mcp == nil {
		return
	}
	if err := r.mcp.Close(); err != nil {
		r.Log.WithError(err).Debug("REPL.closeMCP failed")
	}
	r.mcp = nil
}

func (r *REPL) printf(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(r.out, format, args...); err != nil {
		r.Log.WithError(err).Debug("REPL.printf failed")
	}
}

func splitCommand(line string) (string, string) {
	head, tail, _ := strings.Cut(strings.TrimSpace(line), " ")
	return head, strings.TrimSpace(tail)
}
