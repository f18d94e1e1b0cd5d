package message

// Kind identifies a wire message type.
type Kind int

// Message kinds handled or named by this client layer.
const (
	KindUnknown Kind = iota
	KindError
	KindEvent
	KindAbort
	KindInterrupt
	KindGoodbye
	KindInvocation
	KindResult
)

// String returns the lowercase wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindEvent:
		return "event"
	case KindAbort:
		return "abort"
	case KindInterrupt:
		return "interrupt"
	case KindGoodbye:
		return "goodbye"
	case KindInvocation:
		return "invocation"
	case KindResult:
		return "result"
	default:
		return "unknown"
	}
}

// Message is implemented by every wire message shape in this package.
type Message interface {
	// MessageKind returns the message's wire kind.
	MessageKind() Kind
}
