package tasklist

import (
	"math/rand"
	"slices"
	"time"
)

// Character set and length for generated task ids.
const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

// Store owns an ordered collection of tasks and the status vocabulary they
// move through. Insertion order is creation order and never changes.
//
// A Store is not safe for concurrent use. A concurrent host must serialize
// access to one store (a mutex around it, or a single owning goroutine);
// the store itself takes no locks and never blocks.
type Store struct {
	statuses      []string
	defaultStatus string
	tasks         []Task
	ids           map[string]struct{}
}

// NewStore creates a Store. Without options the allowed statuses are
// "pending" and "complete" and new tasks start as "pending". Fails with a
// ValidationError when the default status is not in the allowed set.
func NewStore(opts ...StoreOption) (*Store, error) {
	o := storeOptions{
		statuses:      []string{"pending", "complete"},
		defaultStatus: "pending",
	}
	for _, opt := range opts {
		opt(&o)
	}
	if !slices.Contains(o.statuses, o.defaultStatus) {
		return nil, validationErrorf("default status %q not in statuses %v", o.defaultStatus, o.statuses)
	}
	return &Store{
		statuses:      slices.Clone(o.statuses),
		defaultStatus: o.defaultStatus,
		ids:           make(map[string]struct{}),
	}, nil
}

// Statuses returns the allowed status set in configuration order.
func (s *Store) Statuses() []string { return slices.Clone(s.statuses) }

// DefaultStatus returns the status assigned to new tasks.
func (s *Store) DefaultStatus() string { return s.defaultStatus }

// Len returns the number of tasks in the store.
func (s *Store) Len() int { return len(s.tasks) }

// AddTasks appends one task per description, in input order, and returns
// the generated ids in the same order. Every task added by one call carries
// an identical created/updated timestamp pair, which keeps batches
// distinguishable from each other later. Empty input yields empty output.
func (s *Store) AddTasks(descriptions []string) []string {
	now := time.Now()
	ids := make([]string, 0, len(descriptions))
	for _, description := range descriptions {
		id := s.generateID()
		s.tasks = append(s.tasks, Task{
			ID:          id,
			Description: description,
			Status:      s.defaultStatus,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		s.ids[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// generateID draws an 8-character lowercase-alphanumeric id, retrying on
// the unlikely collision with an existing task.
func (s *Store) generateID() string {
	for {
		b := make([]byte, idLength)
		for i := range b {
			b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
		}
		id := string(b)
		if _, exists := s.ids[id]; !exists {
			return id
		}
	}
}

// GetTasks returns tasks matching q, applying the filter, then the sort,
// then the truncation. The returned tasks are copies; mutating them does
// not touch the store. Fails with a ValidationError when the filter names a
// status outside the allowed set or the sort field is not a Task timestamp.
func (s *Store) GetTasks(q TaskQuery) ([]Task, error) {
	for _, status := range q.StatusFilter {
		if !slices.Contains(s.statuses, status) {
			return nil, validationErrorf("status %q not in statuses %v", status, s.statuses)
		}
	}
	out := make([]Task, 0, len(s.tasks))
	if len(q.StatusFilter) > 0 {
		for _, task := range s.tasks {
			if slices.Contains(q.StatusFilter, task.Status) {
				out = append(out, task)
			}
		}
	} else {
		out = append(out, s.tasks...)
	}
	switch q.SortBy {
	case "":
	case SortByCreatedAt:
		slices.SortStableFunc(out, func(a, b Task) int { return a.CreatedAt.Compare(b.CreatedAt) })
	case SortByUpdatedAt:
		slices.SortStableFunc(out, func(a, b Task) int { return a.UpdatedAt.Compare(b.UpdatedAt) })
	default:
		return nil, validationErrorf("sort field %q not in fields %v", q.SortBy, []SortField{SortByCreatedAt, SortByUpdatedAt})
	}
	if q.TopN > 0 && q.TopN < len(out) {
		out = out[:q.TopN]
	}
	return out, nil
}

// UpdateTaskStatuses sets status on every task whose id is requested and
// returns the updated ids in store order, all stamped with one shared
// timestamp. Fails with a ValidationError before touching anything when the
// status is not allowed. Matched tasks are applied even when other ids are
// missing: the missing-ids failure reports what was not found after the
// rest has already been updated.
func (s *Store) UpdateTaskStatuses(ids []string, status string) ([]string, error) {
	if !slices.Contains(s.statuses, status) {
		return nil, validationErrorf("status %q not in statuses %v", status, s.statuses)
	}
	now := time.Now()
	updated := make([]string, 0, len(ids))
	for i := range s.tasks {
		if slices.Contains(ids, s.tasks[i].ID) {
			s.tasks[i].Status = status
			s.tasks[i].UpdatedAt = now
			updated = append(updated, s.tasks[i].ID)
		}
	}
	var missing []string
	for _, id := range ids {
		if !slices.Contains(updated, id) && !slices.Contains(missing, id) {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, validationErrorf("task ids %v not found in task list", missing)
	}
	return updated, nil
}
