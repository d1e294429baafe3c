package providers

import (
	"assistant-service/internal/app/config"
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/pkg/exceptions"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	ProviderEcho   = "echo"
	ProviderOpenAI = "openai"
)

// NewProvider resolves a provider by name. An empty name means echo and
// "oa" is accepted for openai.
func NewProvider(name string, cfg config.AppOpenAI, logger *logrus.Logger) (contracts.Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProviderEcho:
		return NewEchoProvider(), nil
	case ProviderOpenAI, "oa":
		return NewOpenAIProvider(cfg, logger)
	default:
		return nil, exceptions.ErrUnknownProvider(name)
	}
}
