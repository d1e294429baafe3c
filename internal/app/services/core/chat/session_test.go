package chat

import (
	"assistant-service/internal/app/models"
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTranscriptStore struct {
	mock.Mock
}

func (m *mockTranscriptStore) Append(ctx context.Context, sessionID string, message models.Message) error {
	args := m.Called(ctx, sessionID, message)
	return args.Error(0)
}

func (m *mockTranscriptStore) List(ctx context.Context, sessionID string, limit int) ([]models.Message, error) {
	args := m.Called(ctx, sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *mockTranscriptStore) Close() error {
	return m.Called().Error(0)
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSessionInMemory(t *testing.T) {
	session := NewSession("run-1", nil, newTestLogger())
	ctx := context.Background()

	session.AddUser(ctx, "hi")
	session.AddAssistant(ctx, "hello")

	history := session.History()
	require.Len(t, history, 2)
	assert.Equal(t, models.RoleUser, history[0].Role)
	assert.Equal(t, "hello", history[1].Content)
	assert.False(t, session.Persistent())

	history[0].Content = "changed"
	assert.Equal(t, "hi", session.History()[0].Content, "History should return a copy")

	saved, err := session.Saved(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestSessionPersists(t *testing.T) {
	ctx := context.Background()
	store := new(mockTranscriptStore)
	store.On("Append", ctx, "run-2", mock.MatchedBy(func(m models.Message) bool { return m.Role == models.RoleUser })).
		Return(nil).Once()
	store.On("Append", ctx, "run-2", mock.MatchedBy(func(m models.Message) bool { return m.Role == models.RoleAssistant })).
		Return(assert.AnError).Once()
	store.On("List", ctx, "", 5).Return([]models.Message{{Role: models.RoleUser, Content: "old"}}, nil)

	session := NewSession("run-2", store, newTestLogger())
	session.AddUser(ctx, "hi")
	session.AddAssistant(ctx, "hello")

	assert.Len(t, session.History(), 2, "a failed append must not drop the message from memory")

	saved, err := session.Saved(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "old", saved[0].Content)
	store.AssertExpectations(t)
}
