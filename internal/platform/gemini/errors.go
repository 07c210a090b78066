package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrInvalidClientConfig is returned by NewClient for unusable settings.
	ErrInvalidClientConfig = errors.New("invalid gemini client configuration")

	// ErrResponseTooLarge is the cause recorded when a body exceeds maxResponseBytes.
	ErrResponseTooLarge = errors.New("response body too large")
)

// Messages reported to callers for malformed or blocked responses.
const (
	msgInvalidFormat   = "Invalid response format from AI"
	msgGenerationStop  = "Generation stopped: %s"
	msgSafetyBlocked   = "Blocked by safety filter: %s"
	msgAPIError        = "API Error: %d %s"
	msgNetworkFailure  = "Network error: %s"
	msgRateLimitFailed = "Rate limiter: %s"
)
