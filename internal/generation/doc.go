// Package generation provides the Generation Gateway: the single place where
// the application turns an assembled prompt into model-generated text.
//
// A Gateway walks an ordered list of Strategy values (model + API version)
// and asks an Upstream to produce text for each one in turn. The first
// success wins. Failed attempts are classified (transport, upstream status,
// safety block, malformed response), logged, and replaced by the next
// strategy; only the last attempt's error crosses the package boundary.
//
// The Upstream interface keeps the package independent of the Gemini REST
// wire format, which lives in internal/platform/gemini. Tests drive the
// Gateway with fake upstreams and fake strategy lists.
package generation
