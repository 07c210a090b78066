// Package postgres provides PostgreSQL implementations of the interfaces in
// internal/store, plus the embedded goose migrations that create the schema
// they rely on. Connections go through database/sql using the pgx stdlib
// driver, and driver errors are mapped onto store sentinels by MapError.
package postgres
