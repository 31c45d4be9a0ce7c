package models

// PublishEvent is emitted to the messenger after each action invocation so
// external consumers can follow what the bot posted (or failed to post).
type PublishEvent struct {
	Kind       Kind     `json:"kind"`
	Identifier string   `json:"identifier,omitempty"`
	PostIDs    []string `json:"post_ids,omitempty"`
	RunID      string   `json:"run_id"`
	Timestamp  int64    `json:"timestamp"`
	Error      string   `json:"error,omitempty"`
}
