package assistant

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/app/models"
	"assistant-service/internal/app/services/core/chat"
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/exceptions"
	"assistant-service/internal/pkg/intent"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type assistantUsecase struct {
	GeoClient       contracts.MCPClient
	TimetableClient contracts.MCPClient
	Session         *chat.Session
	Log             *logrus.Logger
	location        *time.Location
	now             func() time.Time
	providerMu      sync.RWMutex
	provider        contracts.Provider
}

func NewAssistantUsecase(
	geoClient contracts.MCPClient,
	timetableClient contracts.MCPClient,
	provider contracts.Provider,
	session *chat.Session,
	location *time.Location,
	logger *logrus.Logger,
) contracts.AssistantUsecase {
	if location == nil {
		location = time.UTC
	}
	return &assistantUsecase{
		GeoClient:       geoClient,
		TimetableClient: timetableClient,
		Session:         session,
		Log:             logger,
		location:        location,
		now:             time.Now,
		provider:        provider,
	}
}

func (uc *assistantUsecase) SetProvider(provider contracts.Provider) {
	uc.providerMu.Lock()
	defer uc.providerMu.Unlock()
	uc.provider = provider
}

func (uc *assistantUsecase) ProviderName() string {
	uc.providerMu.RLock()
	defer uc.providerMu.RUnlock()
	return uc.provider.Name()
}

func (uc *assistantUsecase) History() []models.Message {
	return uc.Session.History()
}

func (uc *assistantUsecase) SavedHistory(ctx context.Context, limit int) ([]models.Message, error) {
	return uc.Session.Saved(ctx, limit)
}

// Respond tries the geocode intent, then the timetable intents, then the
// provider. A failed service call is reported in Notice and the provider
// answers instead.
func (uc *assistantUsecase) Respond(ctx context.Context, text string) *models.Reply {
	var notice string

	if query, ok := intent.DetectGeocodeQuery(text); ok {
		uc.Log.WithField(constvars.LoggingQueryStringKey, query).Debug("assistantUsecase.Respond geocode intent")
		reply, err := uc.geocode(ctx, query)
		if err == nil {
			return uc.record(ctx, text, &models.Reply{Source: models.ReplySourceGeocode, Text: reply})
		}
		notice = fmt.Sprintf("[mcp error] could not geocode: %s (try /mcp connect or start the geo service)", exceptions.ClientMessage(err))
	} else if found, ok := intent.DetectTimetableIntent(text, uc.now().In(uc.location)); ok {
		uc.Log.WithField("intent", string(found.Kind)).Debug("assistantUsecase.Respond timetable intent")
		reply, err := uc.timetable(ctx, found)
		if err == nil {
			return uc.record(ctx, text, &models.Reply{Source: models.ReplySourceTimetable, Text: reply})
		}
		notice = fmt.Sprintf("[mcp error] could not query the timetable: %s (start the timetable service)", exceptions.ClientMessage(err))
	}

	return uc.generate(ctx, text, notice)
}

func (uc *assistantUsecase) generate(ctx context.Context, text, notice string) *models.Reply {
	uc.providerMu.RLock()
	provider := uc.provider
	uc.providerMu.RUnlock()

	reply, err := provider.Generate(ctx, uc.Session.History(), text)
	if err != nil {
		uc.Log.WithError(err).WithField("provider", provider.Name()).Warn("assistantUsecase.generate provider failed")
		reply = fmt.Sprintf("[provider error] %s", exceptions.ClientMessage(err))
	}
	return uc.record(ctx, text, &models.Reply{Source: models.ReplySourceProvider, Text: reply, Notice: notice})
}

func (uc *assistantUsecase) record(ctx context.Context, text string, reply *models.Reply) *models.Reply {
	uc.Session.AddUser(ctx, text)
	uc.Session.AddAssistant(ctx, reply.Text)
	return reply
}

func (uc *assistantUsecase) geocode(ctx context.Context, query string) (string, error) {
	data, err := call(ctx, uc.GeoClient, constvars.MCPMethodGeocode, map[string]interface{}{
		constvars.ParamGeoQuery: query,
		constvars.ParamGeoLimit: 1,
	})
	if err != nil {
		return "", err
	}
	return formatGeocode(query, data), nil
}

func (uc *assistantUsecase) timetable(ctx context.Context, found *intent.TimetableIntent) (string, error) {
	method, params := found.Request()
	data, err := call(ctx, uc.TimetableClient, method, params)
	if err != nil {
		return "", err
	}
	return formatTimetable(found, data), nil
}

// serviceError is a failed envelope returned by one of the services.
type serviceError struct {
	message string
}

func (e *serviceError) Error() string {
	return e.message
}

func call(ctx context.Context, client contracts.MCPClient, method string, params map[string]interface{}) (map[string]interface{}, error) {
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	resp, err := client.Call(ctx, method, params)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		message := resp.Message
		if message == "" {
			message = strings.TrimSpace(resp.Raw)
		}
		return nil, &serviceError{message: message}
	}
	if resp.Data == nil {
		resp.Data = map[string]interface{}{}
	}
	return resp.Data, nil
}
