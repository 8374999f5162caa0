package reactivity

// Op names the kind of access reported to debug hooks.
type Op string

const (
	OpGet     Op = "get"
	OpHas     Op = "has"
	OpIterate Op = "iterate"

	OpSet    Op = "set"
	OpAdd    Op = "add"
	OpDelete Op = "delete"
	OpClear  Op = "clear"
)

// DebugInfo describes a read or write for OnTrack and OnTrigger hooks.
type DebugInfo struct {
	Target   any
	Op       Op
	Key      any
	NewValue any
	OldValue any
}

// DebuggerEvent is delivered to OnTrack and OnTrigger hooks.
type DebuggerEvent struct {
	Subscriber Subscriber
	DebugInfo
}
