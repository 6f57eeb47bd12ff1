package tasks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// Task names routed by the worker. Payloads carry only the entity id; the
// handler re-fetches the row so it always works on fresh data.
const (
	TaskAnalyzeCoverLetter = "application.analyze_cover_letter"
	TaskExtractResumeText  = "resume.extract_text"
)

// Message is the wire format of a queued task.
type Message struct {
	Task string    `json:"task"`
	ID   uuid.UUID `json:"id"`
}

func (m Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

func DecodeMessage(body []byte) (Message, error) {
	var m Message
	err := json.Unmarshal(body, &m)
	return m, err
}

// Enqueuer schedules a task for asynchronous execution. Enqueue is
// fire-and-forget from the caller's point of view: failures are the caller's
// to log, never to propagate to the client.
type Enqueuer interface {
	Enqueue(ctx context.Context, task string, id uuid.UUID) error
}

// NopEnqueuer drops every task. Used when TASKS_ENABLED=false.
type NopEnqueuer struct{}

func (NopEnqueuer) Enqueue(ctx context.Context, task string, id uuid.UUID) error {
	return nil
}
