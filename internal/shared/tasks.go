package shared

import "time"

// Task type names shared between the scheduler, the API and the worker.
const (
	TypeOverdueSweep = "loan:overdue_sweep"
)

// Queue names with their worker priorities.
const (
	QueueLoans   = "loans"
	QueueDefault = "default"
)

// OverdueSweepPayload is carried by the scheduled overdue sweep task.
// AsOf is zero for scheduled runs, meaning "now" at execution time.
type OverdueSweepPayload struct {
	AsOf time.Time `json:"as_of,omitempty"`
}
