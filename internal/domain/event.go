package domain

import "time"

// Event names emitted by the store and the clients
const (
	EventPhraseAdded       = "phrase_added"
	EventPhrasesImported   = "phrases_imported"
	EventPracticeCompleted = "practice_completed"
	EventChatStarted       = "chat_started"
	EventChatMessage       = "messages_in_chat"
)

// EventLogLimit is the number of most recent events kept in the log
const EventLogLimit = 1000

// Event is a lightweight analytics record of a named user action
type Event struct {
	Name      string                 `json:"event"`
	UserID    string                 `json:"user_id,omitempty"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}
