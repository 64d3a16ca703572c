package transport

// Kind classifies a failed exchange. Callers branch on the kind, never on
// message text.
type Kind int

const (
	// KindMissingCredential means no API key is configured at all.
	KindMissingCredential Kind = iota
	// KindSecurity means a credential would have been sent over an
	// unencrypted scheme; no connection was attempted.
	KindSecurity
	// KindNetwork covers connect, DNS, and mid-stream transport errors.
	KindNetwork
	// KindTimeout means the per-call deadline fired before completion.
	KindTimeout
	// KindOversized means the response body exceeded the byte ceiling and
	// the connection was aborted.
	KindOversized
	// KindHTTP means the remote answered with a 4xx/5xx status.
	KindHTTP
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing_credential"
	case KindSecurity:
		return "security"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindOversized:
		return "oversized_response"
	case KindHTTP:
		return "http_error"
	default:
		return "unknown"
	}
}

// Fault is the classified failure of a single exchange.
type Fault struct {
	Kind    Kind
	Message string
}

// Error implements the error interface. The message is already safe for
// caller-visible text: bounded, and free of credentials and stack detail.
func (f *Fault) Error() string { return f.Message }

// Result is the payload of a successful exchange. JSON reports whether the
// body parsed as JSON; when false, Raw carries the body text verbatim.
type Result struct {
	JSON  bool
	Value any
	Raw   string
}
