package tasklist

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// toolOrder fixes the order tools are described in.
var toolOrder = []string{ToolAddTasks, ToolUpdateTasksStatuses, ToolGetTasks}

// Gateway exposes a Store's operations as LLM tools: it renders their
// schemas per provider convention and dispatches named calls back onto the
// store. The operation set is a fixed table built at construction; there is
// no name-based reflection at call time.
type Gateway struct {
	store *Store
	ops   map[string]operation
	opts  gatewayOptions
}

// operation is one dispatchable tool: a descriptor builder and a handler
// closed over the operation's typed extractor.
type operation struct {
	describe func(statuses []string) (Descriptor, error)
	handle   func(args map[string]any) (Result, error)
}

// NewGateway builds a Gateway over store. The three operations are
// registered here, with their argument schemas reflected and compiled, so a
// schema defect fails construction instead of the first call.
func NewGateway(store *Store, opts ...GatewayOption) (*Gateway, error) {
	if store == nil {
		return nil, fmt.Errorf("store must not be nil")
	}
	o := gatewayOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	g := &Gateway{store: store, ops: make(map[string]operation), opts: o}
	if err := g.registerOperations(); err != nil {
		return nil, err
	}
	return g, nil
}

// addTasksArgs matches the bottasklist_add_tasks parameter contract.
type addTasksArgs struct {
	Descriptions []string `json:"descriptions" jsonschema:"description=The descriptions of the tasks to add" itemdesc:"The description of the task"`
}

// updateTasksStatusesArgs matches the bottasklist_update_tasks_statuses
// parameter contract. The status enum rides the descriptor, not the
// argument schema: a status outside the store's set must reach the store
// and come back as a validation diagnostic the model can correct.
type updateTasksStatusesArgs struct {
	IDs    []string `json:"ids" jsonschema:"description=The ids of the tasks to update" itemdesc:"The id of the task"`
	Status string   `json:"status" jsonschema:"description=The status to update the tasks to"`
}

// getTasksArgs matches the bottasklist_get_tasks parameter contract. All
// parameters are optional. top_n rides as a JSON number per the schema and
// truncates toward zero on use.
type getTasksArgs struct {
	StatusFilter []string  `json:"status_filter,omitempty" jsonschema:"description=The statuses to filter the tasks by" itemdesc:"The status of the task"`
	SortBy       SortField `json:"sort_by,omitempty" jsonschema:"description=The field to sort the tasks by,enum=created_at,enum=updated_at"`
	TopN         float64   `json:"top_n,omitempty" jsonschema:"description=The number of tasks to return"`
}

func (g *Gateway) registerOperations() error {
	add, err := newOperation(ToolAddTasks, "Add tasks to the task list", nil,
		func(args addTasksArgs) (Result, error) {
			return Result{Kind: ResultIDs, IDs: g.store.AddTasks(args.Descriptions)}, nil
		})
	if err != nil {
		return err
	}
	update, err := newOperation(ToolUpdateTasksStatuses, "Update the status of the tasks",
		func(props map[string]any, statuses []string) {
			setEnum(props, "status", statuses)
		},
		func(args updateTasksStatusesArgs) (Result, error) {
			ids, err := g.store.UpdateTaskStatuses(args.IDs, args.Status)
			if err != nil {
				return Result{}, err
			}
			return Result{Kind: ResultIDs, IDs: ids}, nil
		})
	if err != nil {
		return err
	}
	get, err := newOperation(ToolGetTasks, "Get the tasks",
		func(props map[string]any, statuses []string) {
			setItemsEnum(props, "status_filter", statuses)
		},
		func(args getTasksArgs) (Result, error) {
			tasks, err := g.store.GetTasks(TaskQuery{
				StatusFilter: args.StatusFilter,
				SortBy:       args.SortBy,
				TopN:         int(args.TopN),
			})
			if err != nil {
				return Result{}, err
			}
			return Result{Kind: ResultTasks, Tasks: tasks}, nil
		})
	if err != nil {
		return err
	}
	g.ops[ToolAddTasks] = add
	g.ops[ToolUpdateTasksStatuses] = update
	g.ops[ToolGetTasks] = get
	return nil
}

// newOperation wires one tool from its name, description, argument type T,
// and typed handler. decorate, when set, adjusts the descriptor's parameter
// map with store state (status enums) before rendering; the validation
// schema stays untouched by it.
func newOperation[T any](
	name, description string,
	decorate func(props map[string]any, statuses []string),
	handle func(args T) (Result, error),
) (operation, error) {
	ext, err := newExtractor[T](name)
	if err != nil {
		return operation{}, err
	}
	describe := func(statuses []string) (Descriptor, error) {
		schemaMap, err := ext.params()
		if err != nil {
			return Descriptor{}, err
		}
		props, _ := schemaMap["properties"].(map[string]any)
		if decorate != nil {
			decorate(props, statuses)
		}
		return Descriptor{
			Name:        ToolPrefix + name,
			Description: description,
			Properties:  props,
			Required:    requiredFromSchema(schemaMap),
		}, nil
	}
	return operation{
		describe: describe,
		handle: func(args map[string]any) (Result, error) {
			typed, err := ext.extract(name, args)
			if err != nil {
				return Result{}, err
			}
			return handle(typed)
		},
	}, nil
}

// DescribeTools renders the tool schemas for convention c in fixed order:
// add_tasks, update_tasks_statuses, get_tasks. Status enums reflect the
// store's configuration at call time. Fails with a ValidationError wrapping
// ErrUnknownConvention for any other convention value. Pure; causes no
// mutation.
func (g *Gateway) DescribeTools(c Convention) ([]map[string]any, error) {
	statuses := g.store.Statuses()
	out := make([]map[string]any, 0, len(toolOrder))
	for _, name := range toolOrder {
		desc, err := g.ops[name].describe(statuses)
		if err != nil {
			return nil, err
		}
		rendered, err := desc.render(c)
		if err != nil {
			return nil, err
		}
		out = append(out, rendered)
	}
	return out, nil
}

// Dispatch resolves a tool call onto the store. name may carry the
// bottasklist_ prefix or be bare. By default validation failures come back
// as diagnostic text in a ResultText, for the host to hand to the model as
// corrective feedback, and successful payloads are serialized to JSON text;
// WithValidationPassthrough and WithRawResult switch those two behaviors
// off per call. An argument payload that does not match the tool's schema
// always comes back as an ArgumentError, whatever the options.
func (g *Gateway) Dispatch(name string, args map[string]any, opts ...DispatchOption) (Result, error) {
	o := dispatchOptions{
		stringOutput:    true,
		catchValidation: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	opName := strings.TrimPrefix(name, ToolPrefix)
	g.opts.logger.Debug("tool dispatch start", "tool", opName)
	start := time.Now()
	res, err := g.dispatch(opName, args, o)
	g.observe(opName, time.Since(start), err)
	if err != nil {
		if o.catchValidation && IsValidationError(err) {
			return Result{Kind: ResultText, Text: err.Error()}, nil
		}
		return Result{}, err
	}
	return res, nil
}

// dispatch runs the operation lookup, the typed handler, and serialization.
func (g *Gateway) dispatch(opName string, args map[string]any, o dispatchOptions) (Result, error) {
	op, ok := g.ops[opName]
	if !ok {
		return Result{}, &ValidationError{
			Reason: fmt.Sprintf("unknown tool %q", opName),
			Err:    ErrUnknownTool,
		}
	}
	res, err := op.handle(args)
	if err != nil {
		return Result{}, err
	}
	if !o.stringOutput {
		return res, nil
	}
	text, err := encodeResultText(res)
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: ResultText, Text: text}, nil
}

// observe emits the dispatch completion line and fires the after-dispatch
// hook. The hook receives the operation error even when Dispatch later
// converts it to diagnostic text.
func (g *Gateway) observe(tool string, d time.Duration, err error) {
	if err != nil {
		g.opts.logger.Error("tool dispatch failed", "tool", tool, "duration", d, "error", err)
	} else {
		g.opts.logger.Info("tool dispatch", "tool", tool, "duration", d)
	}
	if g.opts.onDispatch != nil {
		g.opts.onDispatch(tool, d, err)
	}
}

// encodeResultText renders a result as the JSON text handed back to the
// model. Tasks map to their display strings first. An empty sequence of
// either kind encodes as "[]"; a nil slice would otherwise render as null.
func encodeResultText(res Result) (string, error) {
	switch res.Kind {
	case ResultIDs:
		return encodeStrings(res.IDs)
	case ResultTasks:
		lines := make([]string, 0, len(res.Tasks))
		for _, task := range res.Tasks {
			lines = append(lines, task.String())
		}
		return encodeStrings(lines)
	default:
		return res.Text, nil
	}
}

func encodeStrings(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
