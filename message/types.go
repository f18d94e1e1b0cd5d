package message

// List is an ordered positional payload.
type List = []any

// Dict is a string-keyed payload mapping.
type Dict = map[string]any

// CancelMode indicates how aggressively an in-flight invocation should be
// cancelled when an interrupt is received.
type CancelMode string

// Cancel modes carried in an interrupt's options under the "mode" key.
const (
	// CancelSkip discards the pending result without notifying the callee.
	CancelSkip CancelMode = "skip"

	// CancelKill notifies the callee and waits for its error before
	// answering the caller.
	CancelKill CancelMode = "kill"

	// CancelKillNoWait notifies the callee but answers the caller
	// immediately.
	CancelKillNoWait CancelMode = "killnowait"
)
