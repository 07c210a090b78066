// Package logger provides structured logging for the application.
//
// Setup builds the process-wide JSON logger from configuration. Request
// scoped loggers travel through context.Context: middleware attaches a logger
// carrying the request ID with WithRequestID, and downstream code retrieves
// it with FromContext or FromContextOrDefault.
package logger
