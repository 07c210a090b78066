// Package testdb provides helpers for database integration tests: locating
// the test database, applying the embedded migrations once per process, and
// running each test inside a transaction that is always rolled back.
package testdb
