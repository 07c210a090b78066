// Package domain contains the core business entities of the application:
// writing projects, the platforms they target, and usage statistics derived
// from them. It has no dependencies on storage or transport.
package domain
