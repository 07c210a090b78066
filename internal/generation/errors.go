package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrInvalidArgument is returned when a caller omits a required input.
	// It is detected before any upstream call is made.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingCredential is returned when no API credential was supplied.
	// It wraps ErrInvalidArgument.
	ErrMissingCredential error = &ArgumentError{Message: "Gemini API Key is missing"}

	// ErrTransport is returned when the upstream could not be reached at all
	ErrTransport = errors.New("transport error")

	// ErrUpstream is returned when the upstream answered with a non-success status
	ErrUpstream = errors.New("upstream error")

	// ErrSafetyBlocked is returned when the upstream refused the prompt on policy grounds
	ErrSafetyBlocked = errors.New("content blocked by safety filters")

	// ErrMalformedResponse is returned when a success response lacks the expected shape
	ErrMalformedResponse = errors.New("malformed response from language model")

	// ErrAllStrategiesExhausted is returned when every strategy failed
	ErrAllStrategiesExhausted = errors.New("all generation strategies failed")

	// ErrRefineFailed is returned when both refine strategies failed
	ErrRefineFailed = errors.New("failed to refine content. Please try again.")

	// ErrInvalidConfig is returned when the gateway configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// defaultFailureMessage is reported when the loop ended without recording any attempt.
const defaultFailureMessage = "failed to generate content"

// ArgumentError reports missing or unusable caller input. Its message is
// safe to return to callers as-is, and it always matches ErrInvalidArgument.
type ArgumentError struct {
	Message string
}

// InvalidArgument creates an ArgumentError with the given message.
func InvalidArgument(message string) error {
	return &ArgumentError{Message: message}
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return e.Message
}

// Unwrap returns ErrInvalidArgument.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// ErrorKind classifies a failed attempt.
type ErrorKind string

// Attempt failure kinds
const (
	KindTransport         ErrorKind = "transport_error"
	KindUpstream          ErrorKind = "upstream_error"
	KindSafetyBlocked     ErrorKind = "safety_blocked"
	KindMalformedResponse ErrorKind = "malformed_response"
)

// sentinel maps a kind to the package-level error it unwraps to.
func (k ErrorKind) sentinel() error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindUpstream:
		return ErrUpstream
	case KindSafetyBlocked:
		return ErrSafetyBlocked
	case KindMalformedResponse:
		return ErrMalformedResponse
	default:
		return nil
	}
}

// AttemptError describes why a single strategy failed.
// Its Error method returns only the human-readable message, so the message
// can be shown to users verbatim.
type AttemptError struct {
	Kind       ErrorKind
	Strategy   Strategy
	StatusCode int    // HTTP status, zero when no response was received
	Message    string // human-readable, shown to callers as-is
	Err        error  // underlying cause, if any
}

// NewAttemptError creates an AttemptError of the given kind.
func NewAttemptError(kind ErrorKind, strategy Strategy, message string, cause error) *AttemptError {
	return &AttemptError{
		Kind:     kind,
		Strategy: strategy,
		Message:  message,
		Err:      cause,
	}
}

// Error implements the error interface.
func (e *AttemptError) Error() string {
	return e.Message
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is/errors.As.
func (e *AttemptError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// exhaustedError is the terminal error of a generation call. Its message is
// the last attempt's message; earlier attempts are discarded.
type exhaustedError struct {
	last *AttemptError
}

func (e *exhaustedError) Error() string {
	if e.last == nil || e.last.Message == "" {
		return defaultFailureMessage
	}
	return e.last.Message
}

func (e *exhaustedError) Unwrap() []error {
	if e.last == nil {
		return []error{ErrAllStrategiesExhausted}
	}
	return []error{ErrAllStrategiesExhausted, e.last}
}

// LastAttempt returns the attempt error carried by err, if any.
func LastAttempt(err error) (*AttemptError, bool) {
	var attemptErr *AttemptError
	if errors.As(err, &attemptErr) {
		return attemptErr, true
	}
	return nil, false
}

// IsInvalidArgument reports whether err was caused by missing caller input.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
