// Package api handles incoming HTTP requests, request validation, and
// response formatting for the content and project endpoints.
//
// Every failure is written as {"error":{"status":...,"message":...}}.
// Generation failures keep the two kinds apart: missing input is
// "invalid-argument" (400) and anything that went wrong upstream is
// "internal" (500) carrying the last attempt's message.
package api
