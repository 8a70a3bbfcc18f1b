// Package api contains the HTTP handlers for the generation relay and the
// retention cleanup trigger, plus the error-to-status mapping that keeps
// internal error detail out of client responses.
package api
