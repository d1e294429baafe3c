package mcpclient

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/exceptions"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

const (
	defaultPath       = "/mcp"
	maxResponseBytes  = 1 << 20
	rawPreviewLength  = 2000
	invalidJSONReason = "invalid JSON response"
)

type mcpClient struct {
	endpoint   string
	target     string
	connected  bool
	mu         sync.RWMutex
	HTTPClient *http.Client
	Log        *logrus.Logger
}

// NewMCPClient returns a client for endpoint. An endpoint without a path is
// sent to /mcp. Nothing is dialled until the first call.
func NewMCPClient(endpoint string, timeout time.Duration, logger *logrus.Logger) contracts.MCPClient {
	return &mcpClient{
		endpoint:   strings.TrimSpace(endpoint),
		HTTPClient: &http.Client{Timeout: timeout},
		Log:        logger,
	}
}

func (c *mcpClient) Endpoint() string {
	return c.endpoint
}

func (c *mcpClient) Connect(ctx context.Context) error {
	if c.endpoint == "" {
		return exceptions.ErrMCPEndpointNotSet()
	}
	parsed, err := url.Parse(c.endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return exceptions.ErrMCPInvalidEndpoint(err, c.endpoint)
	}

	target := c.endpoint
	if parsed.Path == "" || parsed.Path == "/" {
		target = strings.TrimRight(c.endpoint, "/") + defaultPath
	}

	c.mu.Lock()
	c.target = target
	c.connected = true
	c.mu.Unlock()

	c.Log.WithField("endpoint", target).Debug("mcpClient.Connect succeeded")
	return nil
}

func (c *mcpClient) Close() error {
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()
	return nil
}

func (c *mcpClient) Call(ctx context.Context, method string, params map[string]interface{}) (*contracts.MCPResponse, error) {
	if params == nil {
		params = map[string]interface{}{}
	}
	return c.send(ctx, map[string]interface{}{
		"method": method,
		"params": params,
	})
}

// SendText posts text as-is when it is a JSON object. Any other text is
// treated as a geocode query.
func (c *mcpClient) SendText(ctx context.Context, text string) (*contracts.MCPResponse, error) {
	var body map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &body); err == nil && body != nil {
		return c.send(ctx, body)
	}
	return c.Call(ctx, constvars.MCPMethodGeocode, map[string]interface{}{
		constvars.ParamGeoQuery: text,
	})
}

func (c *mcpClient) send(ctx context.Context, body map[string]interface{}) (*contracts.MCPResponse, error) {
	c.mu.RLock()
	connected, target := c.connected, c.target
	c.mu.RUnlock()
	if !connected {
		return nil, exceptions.ErrMCPNotConnected()
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	c.Log.WithFields(logrus.Fields{
		"endpoint":                    target,
		constvars.LoggingMCPMethodKey: body["method"],
	}).Debug("mcpClient.send posting request")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.WithError(err).WithField("endpoint", target).Warn("mcpClient.send request failed")
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	// Error envelopes still arrive as JSON with success=false, so the status
	// code is only logged.
	response := &contracts.MCPResponse{}
	if err := json.Unmarshal(raw, response); err != nil {
		preview := string(raw)
		if len(preview) > rawPreviewLength {
			preview = preview[:rawPreviewLength]
		}
		return &contracts.MCPResponse{Success: false, Message: invalidJSONReason, Raw: preview}, nil
	}
	response.Raw = string(raw)

	c.Log.WithFields(logrus.Fields{
		constvars.LoggingStatusCodeKey: resp.StatusCode,
		constvars.LoggingSuccessKey:    response.Success,
	}).Debug("mcpClient.send got response")
	return response, nil
}
