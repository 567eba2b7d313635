// Package tasklist provides an in-memory task list that an LLM agent
// drives through tool calls.
//
// # Overview
//
// A Store owns a small ordered collection of tasks with string statuses and
// exposes three operations: add tasks, query tasks (filter, sort,
// truncate), and update task statuses. A Gateway describes those operations
// as tool schemas for LLM providers (openai and claude conventions) and
// dispatches a tool call back onto the store: marshal → validate (against
// the same JSON Schema shown to the model) → typed call → serialize the
// result or return a diagnostic the model can act on.
//
// Pipeline: argument struct → reflected schema → Gateway → Dispatch
// (validate, call, serialize) → Result.
//
// # Key concepts
//
//   - Single Source of Truth: one set of struct tags drives both the schema
//     sent to the model and the validation of incoming arguments.
//   - Self-Correction: validation failures surface as plain strings the
//     host can feed back to the model for a corrected call.
//   - Closed dispatch: the three operations live in a fixed table built at
//     Gateway construction; no name-based reflection at call time.
//
// See Store, Gateway, and Result for the core types, and NewStore /
// NewGateway for setup.
//
// # Example
//
//	store, err := tasklist.NewStore()
//	if err != nil { ... }
//	gw, err := tasklist.NewGateway(store)
//	if err != nil { ... }
//	tools, _ := gw.DescribeTools(tasklist.ConventionOpenAI) // hand to the model
//	res, err := gw.Dispatch("bottasklist_add_tasks", map[string]any{
//	    "descriptions": []any{"buy milk"},
//	})
//	if err != nil { ... }
//	// res.Text is a JSON array with the generated id
package tasklist
