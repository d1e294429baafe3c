package providers

import (
	"assistant-service/internal/app/config"
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/app/models"
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/exceptions"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const (
	upstreamOpenAI      = "openai"
	chatCompletionsPath = "/v1/chat/completions"
	rawReplyLength      = 2000
)

var errInvalidJSON = errors.New("response is not valid JSON")

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type openAIProvider struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	HTTPClient  *http.Client
	Log         *logrus.Logger
}

// NewOpenAIProvider talks to any OpenAI-compatible chat completions API.
func NewOpenAIProvider(cfg config.AppOpenAI, logger *logrus.Logger) (contracts.Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, exceptions.ErrProviderNotConfigured(ProviderOpenAI, "OPENAI_API_KEY")
	}
	return &openAIProvider{
		BaseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		HTTPClient:  &http.Client{Timeout: cfg.Timeout},
		Log:         logger,
	}, nil
}

func (p *openAIProvider) Name() string {
	return ProviderOpenAI
}

func (p *openAIProvider) Generate(ctx context.Context, history []models.Message, prompt string) (string, error) {
	messages := make([]chatMessage, 0, len(history)+1)
	for _, message := range history {
		switch message.Role {
		case models.RoleUser, models.RoleAssistant, models.RoleSystem:
			messages = append(messages, chatMessage{Role: message.Role, Content: message.Content})
		}
	}
	messages = append(messages, chatMessage{Role: models.RoleUser, Content: prompt})

	payload, err := json.Marshal(chatCompletionRequest{
		Model:       p.Model,
		Messages:    messages,
		Temperature: p.Temperature,
	})
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, p.BaseURL+chatCompletionsPath, bytes.NewReader(payload))
	if err != nil {
		return "", exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+p.APIKey)

	p.Log.WithFields(logrus.Fields{
		"model":    p.Model,
		"messages": len(messages),
	}).Debug("openAIProvider.Generate posting request")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return "", exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", exceptions.ErrSendHTTPRequest(err)
	}
	if resp.StatusCode != constvars.StatusOK {
		p.Log.WithField(constvars.LoggingStatusCodeKey, resp.StatusCode).Warn("openAIProvider.Generate unexpected status")
		return "", exceptions.ErrUpstreamStatus(upstreamOpenAI, resp.StatusCode)
	}

	if !gjson.ValidBytes(raw) {
		return "", exceptions.ErrDecodeResponse(errInvalidJSON, upstreamOpenAI)
	}
	content := gjson.GetBytes(raw, "choices.0.message.content")
	if !content.Exists() {
		// Unexpected but valid JSON: show it rather than nothing.
		reply := string(raw)
		if len(reply) > rawReplyLength {
			reply = reply[:rawReplyLength]
		}
		return reply, nil
	}
	return strings.TrimSpace(content.String()), nil
}
