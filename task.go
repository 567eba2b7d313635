package tasklist

import (
	"fmt"
	"time"
)

// SortField names a Task timestamp usable as a sort key in GetTasks.
type SortField string

// Sortable timestamp fields.
const (
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
)

// Task is a single entry in a Store. ID and Description are fixed at
// creation; Status and UpdatedAt change only through
// Store.UpdateTaskStatuses. Tasks are never deleted.
type Task struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// String renders the display form handed back to the model:
// "<description> - **Status:** <status>".
func (t Task) String() string {
	return fmt.Sprintf("%s - **Status:** %s", t.Description, t.Status)
}

// TaskQuery narrows and orders the result of Store.GetTasks. The zero value
// returns every task in insertion order.
type TaskQuery struct {
	// StatusFilter keeps only tasks whose status is listed. Every entry
	// must be one of the store's allowed statuses. Empty means no filter.
	StatusFilter []string
	// SortBy orders tasks ascending by the named timestamp. Ties keep
	// insertion order. Empty means no sort.
	SortBy SortField
	// TopN truncates the result to the first n tasks after filtering and
	// sorting, when positive.
	TopN int
}
