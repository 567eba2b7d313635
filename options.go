package tasklist

import (
	"log/slog"
	"time"
)

// storeOptions hold optional Store settings.
type storeOptions struct {
	statuses      []string
	defaultStatus string
}

// StoreOption configures a Store (e.g. WithStatuses, WithDefaultStatus).
type StoreOption func(*storeOptions)

// WithStatuses replaces the allowed status set. Order is kept: it is the
// order enums carry in generated schemas and in validation messages.
func WithStatuses(statuses ...string) StoreOption {
	return func(o *storeOptions) {
		o.statuses = statuses
	}
}

// WithDefaultStatus sets the status assigned to new tasks. It must be a
// member of the allowed set or NewStore fails.
func WithDefaultStatus(status string) StoreOption {
	return func(o *storeOptions) {
		o.defaultStatus = status
	}
}

// gatewayOptions hold optional Gateway settings.
type gatewayOptions struct {
	logger     *slog.Logger
	onDispatch func(tool string, d time.Duration, err error)
}

// GatewayOption configures a Gateway.
type GatewayOption func(*gatewayOptions)

// WithLogger sets the logger for dispatch start and completion lines. The
// default discards everything, so the library stays silent unless the host
// opts in. A nil logger keeps the discard default.
func WithLogger(logger *slog.Logger) GatewayOption {
	return func(o *gatewayOptions) {
		if logger == nil {
			return
		}
		o.logger = logger
	}
}

// WithOnDispatch sets a hook called after every Dispatch with the bare tool
// name, the elapsed time, and the operation error. The error is set even
// when a caught validation failure is returned to the caller as text, so
// the hook sees what actually happened.
func WithOnDispatch(fn func(tool string, d time.Duration, err error)) GatewayOption {
	return func(o *gatewayOptions) {
		o.onDispatch = fn
	}
}

// dispatchOptions hold per-call Dispatch settings.
type dispatchOptions struct {
	stringOutput    bool
	catchValidation bool
}

// DispatchOption configures a single Dispatch call.
type DispatchOption func(*dispatchOptions)

// WithRawResult disables string serialization: the Result keeps its typed
// payload (ids or tasks) instead of a JSON text.
func WithRawResult() DispatchOption {
	return func(o *dispatchOptions) {
		o.stringOutput = false
	}
}

// WithValidationPassthrough disables catching: validation failures return
// as errors instead of diagnostic text.
func WithValidationPassthrough() DispatchOption {
	return func(o *dispatchOptions) {
		o.catchValidation = false
	}
}
