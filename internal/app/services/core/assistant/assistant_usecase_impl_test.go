package assistant

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/app/models"
	"assistant-service/internal/app/services/core/chat"
	"assistant-service/internal/app/services/shared/providers"
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/exceptions"
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMCPClient struct {
	mock.Mock
}

func (m *mockMCPClient) Connect(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockMCPClient) Call(ctx context.Context, method string, params map[string]interface{}) (*contracts.MCPResponse, error) {
	args := m.Called(ctx, method, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contracts.MCPResponse), args.Error(1)
}

func (m *mockMCPClient) SendText(ctx context.Context, text string) (*contracts.MCPResponse, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contracts.MCPResponse), args.Error(1)
}

func (m *mockMCPClient) Endpoint() string {
	return "http://test"
}

func (m *mockMCPClient) Close() error {
	return nil
}

type testDeps struct {
	geo       *mockMCPClient
	timetable *mockMCPClient
	usecase   *assistantUsecase
}

// Wednesday 2025-09-10 14:05 UTC
var fixedNow = time.Date(2025, 9, 10, 14, 5, 0, 0, time.UTC)

func newTestAssistant(t *testing.T) *testDeps {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	geo := new(mockMCPClient)
	geo.On("Connect", mock.Anything).Return(nil).Maybe()
	timetable := new(mockMCPClient)
	timetable.On("Connect", mock.Anything).Return(nil).Maybe()

	usecase := NewAssistantUsecase(geo, timetable, providers.NewEchoProvider(), chat.NewSession("test", nil, logger), time.UTC, logger)
	uc, ok := usecase.(*assistantUsecase)
	require.True(t, ok)
	uc.now = func() time.Time { return fixedNow }
	return &testDeps{geo: geo, timetable: timetable, usecase: uc}
}

func lessonData(subject string) map[string]interface{} {
	return map[string]interface{}{
		"week": "A", "day": float64(0), "start": "09:00", "end": "10:00",
		"subject": subject, "teacher": "Ms Smith", "room": "R1", "notes": "",
	}
}

func TestRespond_Geocode(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		deps := newTestAssistant(t)
		deps.geo.On("Call", mock.Anything, constvars.MCPMethodGeocode, map[string]interface{}{"q": "Paris", "limit": 1}).
			Return(&contracts.MCPResponse{Success: true, Data: map[string]interface{}{
				"matches": float64(1), "lat": 48.8566, "lon": 2.3522, "display_name": "Paris, France",
			}}, nil)

		reply := deps.usecase.Respond(context.Background(), "coordinates of Paris?")

		assert.Equal(t, models.ReplySourceGeocode, reply.Source)
		assert.Equal(t, "MCP: Geolocate\nCoordinates for Paris, France: 48.8566, 2.3522", reply.Text)
		assert.Empty(t, reply.Notice)
		assert.Len(t, deps.usecase.History(), 2)
	})

	t.Run("No match", func(t *testing.T) {
		deps := newTestAssistant(t)
		deps.geo.On("Call", mock.Anything, constvars.MCPMethodGeocode, mock.Anything).
			Return(&contracts.MCPResponse{Success: true, Data: map[string]interface{}{"matches": float64(0)}}, nil)

		reply := deps.usecase.Respond(context.Background(), "coordinates of Atlantis")
		assert.Equal(t, "MCP: Geolocate\nNo match found for Atlantis.", reply.Text)
	})

	t.Run("Service down falls back to the provider", func(t *testing.T) {
		deps := newTestAssistant(t)
		deps.geo.On("Call", mock.Anything, constvars.MCPMethodGeocode, mock.Anything).
			Return(nil, exceptions.ErrSendHTTPRequest(assert.AnError))

		reply := deps.usecase.Respond(context.Background(), "coordinates of Paris")

		assert.Equal(t, models.ReplySourceProvider, reply.Source)
		assert.Equal(t, "(echo#1) You said: coordinates of Paris", reply.Text)
		assert.Contains(t, reply.Notice, constvars.ErrClientUpstreamUnavailable)
	})
}

func TestRespond_Timetable(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		method string
		params map[string]interface{}
		data   map[string]interface{}
		want   string
	}{
		{
			name:   "Day listing",
			input:  "lessons on monday",
			method: constvars.MCPMethodDay,
			params: map[string]interface{}{"date": "2025-09-15"},
			data:   map[string]interface{}{"week": "B", "lessons": []interface{}{lessonData("Maths")}},
			want:   "MCP: Timetable\nWeek B, Monday 2025-09-15:\n  09:00-10:00 Maths (Ms Smith, R1)",
		},
		{
			name:   "Empty day",
			input:  "lessons today",
			method: constvars.MCPMethodDay,
			params: map[string]interface{}{"date": "2025-09-10"},
			data:   map[string]interface{}{"week": "A", "lessons": []interface{}{}},
			want:   "MCP: Timetable\nWeek A, Wednesday 2025-09-10: no lessons.",
		},
		{
			name:   "Nothing at a time",
			input:  "lesson at 9pm",
			method: constvars.MCPMethodAt,
			params: map[string]interface{}{"datetime": "2025-09-10T21:00"},
			data:   map[string]interface{}{"week": "A", "lesson": nil},
			want:   "MCP: Timetable\nNo lesson at 21:00 on Wednesday 2025-09-10 (week A).",
		},
		{
			name:   "Next lesson",
			input:  "next lesson please",
			method: constvars.MCPMethodNext,
			params: map[string]interface{}{},
			data:   map[string]interface{}{"week": "A", "lesson": lessonData("Physics")},
			want:   "MCP: Timetable\nNext lesson (week A): Monday 09:00-10:00 Physics (Ms Smith, R1)",
		},
		{
			name:   "Week type for a date",
			input:  "what week is it on 2025-09-15",
			method: constvars.MCPMethodWeekType,
			params: map[string]interface{}{"date": "2025-09-15"},
			data:   map[string]interface{}{"week": "B"},
			want:   "MCP: Timetable\n2025-09-15 is week B.",
		},
		{
			name:   "Period out of range",
			input:  "fifth period",
			method: constvars.MCPMethodPeriod,
			params: map[string]interface{}{"date": "2025-09-10", "n": 5},
			data:   map[string]interface{}{"week": "A", "outcome": "out_of_range", "count": float64(3), "lesson": nil},
			want:   "MCP: Timetable\nOnly 3 lessons on Wednesday 2025-09-10 (week A), there is no period 5.",
		},
		{
			name:   "Day with a week hint that disagrees",
			input:  "lessons on friday week A",
			method: constvars.MCPMethodDay,
			params: map[string]interface{}{"date": "2025-09-12"},
			data:   map[string]interface{}{"week": "B", "lessons": []interface{}{}},
			want:   "MCP: Timetable\nWeek B, Friday 2025-09-12: no lessons.\n(note: that is week B, not week A)",
		},
		{
			name:   "Subject search",
			input:  "when is maths next?",
			method: constvars.MCPMethodFind,
			params: map[string]interface{}{"subject": "maths"},
			data:   map[string]interface{}{"week": "B", "lesson": nil},
			want:   "MCP: Timetable\nNo maths lesson in the next two weeks.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestAssistant(t)
			deps.timetable.On("Call", mock.Anything, tt.method, tt.params).
				Return(&contracts.MCPResponse{Success: true, Data: tt.data}, nil)

			reply := deps.usecase.Respond(context.Background(), tt.input)

			assert.Equal(t, models.ReplySourceTimetable, reply.Source)
			assert.Equal(t, tt.want, reply.Text)
			deps.timetable.AssertExpectations(t)
		})
	}
}

func TestRespond_TimetableFailure(t *testing.T) {
	deps := newTestAssistant(t)
	deps.timetable.On("Call", mock.Anything, constvars.MCPMethodNext, mock.Anything).
		Return(&contracts.MCPResponse{Success: false, Message: "timetable has not been loaded yet"}, nil)

	reply := deps.usecase.Respond(context.Background(), "what's my next lesson")

	assert.Equal(t, models.ReplySourceProvider, reply.Source)
	assert.Contains(t, reply.Notice, "timetable has not been loaded yet")
}

func TestRespond_ProviderAndSwitching(t *testing.T) {
	deps := newTestAssistant(t)
	ctx := context.Background()

	first := deps.usecase.Respond(ctx, "hello")
	second := deps.usecase.Respond(ctx, "again")

	assert.Equal(t, "(echo#1) You said: hello", first.Text)
	assert.Equal(t, "(echo#2) You said: again", second.Text)
	assert.Equal(t, providers.ProviderEcho, deps.usecase.ProviderName())
	assert.Len(t, deps.usecase.History(), 4)

	failing := new(mockProvider)
	failing.On("Name").Return("failing")
	failing.On("Generate", mock.Anything, mock.Anything, "boom").Return("", assert.AnError)
	deps.usecase.SetProvider(failing)

	reply := deps.usecase.Respond(ctx, "boom")
	assert.Equal(t, "failing", deps.usecase.ProviderName())
	assert.Equal(t, "[provider error] "+assert.AnError.Error(), reply.Text)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Name() string {
	return m.Called().String(0)
}

func (m *mockProvider) Generate(ctx context.Context, history []models.Message, prompt string) (string, error) {
	args := m.Called(ctx, history, prompt)
	return args.String(0), args.Error(1)
}
