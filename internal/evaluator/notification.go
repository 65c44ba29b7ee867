package evaluator

import "fmt"

// TraceEntry records one step of a Notification's travel through the tree:
// the node at the boundary, the environment active there and a short
// message ("unbound symbol", "inherited", ...). Entries are ordered
// innermost first.
type TraceEntry struct {
	Node    Amalgam
	Env     *Environment
	Message string
}

// Notification is the unified signal value of the language. A fatal
// Notification is a structured error: every composite boundary it crosses
// appends exactly one trace entry and re-returns it. A non-fatal
// Notification is a control-flow escape (break/return): only its designated
// consumer (loop) may absorb it, everything else passes it through with
// zero modification.
type Notification struct {
	Located
	Fatal   bool
	Payload Amalgam
	Trace   []TraceEntry
}

// NewNotification builds a fatal Notification with an empty trace. Callers
// push the generation-site entry themselves.
func NewNotification() *Notification {
	return &Notification{
		Located: unknownLocation(),
		Fatal:   true,
		Payload: NewAtom("NIL"),
	}
}

// NewEscape builds the non-fatal Notification used by break and return to
// carry a payload out of a loop's dynamic extent.
func NewEscape(payload Amalgam) *Notification {
	return &Notification{
		Located: unknownLocation(),
		Fatal:   false,
		Payload: payload,
	}
}

func (n *Notification) Kind() Kind { return NotificationKind }
func (n *Notification) Evaluate(_ *Environment) Amalgam { return n }

// Push appends one trace entry. The trace stays ordered innermost first.
func (n *Notification) Push(node Amalgam, env *Environment, message string) {
	n.Trace = append(n.Trace, TraceEntry{Node: node, Env: env, Message: message})
}

func (n *Notification) String() string {
	if n.Fatal {
		return fmt.Sprintf("<fatal %s>", n.Payload)
	}
	return fmt.Sprintf("<escape %s>", n.Payload)
}

// fatalf is a shorthand for the malformed-argument class of failures raised
// inside primitives: one generation-site entry at the point of detection.
func fatalf(node Amalgam, env *Environment, format string, args ...any) *Notification {
	n := NewNotification()
	n.Push(node, env, fmt.Sprintf(format, args...))
	return n
}
