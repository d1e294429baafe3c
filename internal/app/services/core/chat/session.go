package chat

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/app/models"
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Session is the in-memory transcript of one REPL run. When a store is set
// every message is also appended to it; store failures are logged only.
type Session struct {
	ID      string
	mu      sync.Mutex
	history []models.Message
	store   contracts.TranscriptStore
	log     *logrus.Logger
	now     func() time.Time
}

func NewSession(id string, store contracts.TranscriptStore, logger *logrus.Logger) *Session {
	return &Session{
		ID:    id,
		store: store,
		log:   logger,
		now:   time.Now,
	}
}

func (s *Session) AddUser(ctx context.Context, content string) {
	s.add(ctx, models.RoleUser, content)
}

func (s *Session) AddAssistant(ctx context.Context, content string) {
	s.add(ctx, models.RoleAssistant, content)
}

func (s *Session) add(ctx context.Context, role, content string) {
	message := models.Message{Role: role, Content: content, CreatedAt: s.now()}

	s.mu.Lock()
	s.history = append(s.history, message)
	s.mu.Unlock()

	if s.store == nil {
		return
	}
	if err := s.store.Append(ctx, s.ID, message); err != nil {
		s.log.WithError(err).WithField("session_id", s.ID).Warn("Session.add could not persist message")
	}
}

// History returns a copy of the messages so far.
func (s *Session) History() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Saved lists persisted messages across all sessions. Without a store it
// returns nothing.
func (s *Session) Saved(ctx context.Context, limit int) ([]models.Message, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.List(ctx, "", limit)
}

func (s *Session) Persistent() bool {
	return s.store != nil
}
