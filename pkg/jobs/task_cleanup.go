package jobs

import "time"

// TaskCleanup is the JSON payload put on the RabbitMQ cleanup queue when the tasks of a
// deleted project could not be removed in the request that deleted it.
type TaskCleanup struct {
	ProjectID   string    `json:"project_id"`
	OwnerID     string    `json:"owner_id"`
	RequestedAt time.Time `json:"requested_at"`
	Reason      string    `json:"reason,omitempty"`
}
