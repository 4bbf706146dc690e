// Package logging provides structured logging utilities for kubeclient.
//
// It centralizes the attribute vocabulary used throughout the codebase
// (operation, path, event_type, status, ...) so log lines stay queryable,
// and offers sanitizers that redact API server addresses before they reach
// the logs.
package logging
