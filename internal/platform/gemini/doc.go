// Package gemini is the HTTP adapter between the generation gateway and
// Google's generative-language REST API.
//
// Client implements generation.Upstream: each call to Attempt issues one
// generateContent request for a single strategy and translates the outcome
// into either the generated text or a *generation.AttemptError of the
// appropriate kind:
//
//   - transport failures (no response) are KindTransport
//   - non-2xx responses are KindUpstream, using the API's error message when
//     the body carries one
//   - a prompt blocked by safety filters is KindSafetyBlocked
//   - a 2xx response without usable candidate content is KindMalformedResponse
//
// Fallback across strategies is the gateway's job; the client never retries.
package gemini
