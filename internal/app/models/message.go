package models

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	ReplySourceGeocode   = "geocode"
	ReplySourceTimetable = "timetable"
	ReplySourceProvider  = "provider"
)

// Reply is what the assistant answers to one line of input. Notice carries
// a service failure that made it fall back to the provider.
type Reply struct {
	Source string
	Text   string
	Notice string
}
