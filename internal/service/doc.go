// Package service contains the application use cases. It orchestrates
// domain objects, the project repository, and the generation gateway.
//
// Key components:
//
// 1. ContentService:
//   - Builds content and refine prompts from caller fields
//   - Passes the configured credential explicitly to the generation gateway
//
// 2. ProjectService:
//   - Creates, lists, updates and deletes a user's projects, optionally
//     generating their content on creation
//   - Enforces ownership and wraps read-modify-write operations in a transaction
//   - Aggregates the rolling seven-day word usage series
//
// Generation errors are passed through unchanged so the API layer can tell
// invalid-argument failures from upstream failures.
package service
