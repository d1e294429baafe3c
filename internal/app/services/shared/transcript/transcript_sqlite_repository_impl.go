package transcript

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/app/models"
	"assistant-service/internal/pkg/exceptions"
	"context"
	"database/sql"
	"time"
)

type transcriptSQLiteRepository struct {
	DB *sql.DB
}

// NewTranscriptSQLiteRepository creates the messages table when missing.
// The repository owns db and closes it in Close.
func NewTranscriptSQLiteRepository(ctx context.Context, db *sql.DB) (contracts.TranscriptStore, error) {
	repo := &transcriptSQLiteRepository{DB: db}
	if err := repo.migrate(ctx); err != nil {
		return nil, exceptions.ErrTranscriptStore(err, "migrate")
	}
	return repo, nil
}

func (r *transcriptSQLiteRepository) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_session_id ON messages(session_id);`,
	}
	for _, stmt := range stmts {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *transcriptSQLiteRepository) Append(ctx context.Context, sessionID string, message models.Message) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO messages (session_id, role, content, created_at) VALUES (?, ?, ?, ?)`,
		sessionID,
		message.Role,
		message.Content,
		message.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return exceptions.ErrTranscriptStore(err, "append")
	}
	return nil
}

// List returns up to limit of the most recent messages, oldest first. An
// empty sessionID lists across all sessions.
func (r *transcriptSQLiteRepository) List(ctx context.Context, sessionID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT role, content, created_at FROM messages
		 WHERE (? = '' OR session_id = ?)
		 ORDER BY id DESC
		 LIMIT ?`,
		sessionID, sessionID, limit,
	)
	if err != nil {
		return nil, exceptions.ErrTranscriptStore(err, "list")
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var message models.Message
		var createdAt string
		if err := rows.Scan(&message.Role, &message.Content, &createdAt); err != nil {
			return nil, exceptions.ErrTranscriptStore(err, "list")
		}
		if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			message.CreatedAt = parsed
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrTranscriptStore(err, "list")
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *transcriptSQLiteRepository) Close() error {
	return r.DB.Close()
}
