package tasklist

// Convention selects the wire format for tool schemas. Providers disagree
// on the envelope, not on the parameter schema inside it.
type Convention string

// Supported schema conventions.
const (
	ConventionOpenAI Convention = "openai"
	ConventionClaude Convention = "claude"
)

// ToolPrefix namespaces the advertised tool names so they do not clash with
// other tools offered to the same model. Dispatch accepts names with or
// without it.
const ToolPrefix = "bottasklist_"

// Bare operation names. The advertised tool name is ToolPrefix + name.
const (
	ToolAddTasks            = "add_tasks"
	ToolUpdateTasksStatuses = "update_tasks_statuses"
	ToolGetTasks            = "get_tasks"
)

// ResultKind discriminates the payload variants of Result.
type ResultKind int

const (
	// ResultText carries serialized tool output or a caught validation
	// diagnostic.
	ResultText ResultKind = iota
	// ResultIDs carries task ids (add and update operations in raw mode).
	ResultIDs
	// ResultTasks carries task snapshots (get operation in raw mode).
	ResultTasks
)

// Result is the outcome of one Dispatch. Exactly one payload field is
// meaningful, selected by Kind.
type Result struct {
	Kind  ResultKind
	Text  string
	IDs   []string
	Tasks []Task
}
