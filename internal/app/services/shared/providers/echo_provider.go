package providers

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/app/models"
	"context"
	"fmt"
)

type echoProvider struct{}

func NewEchoProvider() contracts.Provider {
	return &echoProvider{}
}

func (p *echoProvider) Name() string {
	return ProviderEcho
}

// Generate counts the prompt itself as the latest user turn.
func (p *echoProvider) Generate(ctx context.Context, history []models.Message, prompt string) (string, error) {
	count := 1
	for _, message := range history {
		if message.Role == models.RoleUser {
			count++
		}
	}
	return fmt.Sprintf("(echo#%d) You said: %s", count, prompt), nil
}
