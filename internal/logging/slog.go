package logging

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyPath      = "path"
	KeyEventType = "event_type"
	KeyStatus    = "status"
	KeyError     = "error"
	KeyHost      = "host"
	KeyKind      = "kind"
)

// ipv4Regex matches IPv4 addresses for sanitization.
var ipv4Regex = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

// ipv6Regex matches IPv6 addresses, including the bracketed form used in
// URLs, e.g. [2001:db8::1].
var ipv6Regex = regexp.MustCompile(`\[?([0-9a-fA-F]{0,4}:){2,7}[0-9a-fA-F]{0,4}\]?`)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Path returns a slog attribute for the resource path.
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// EventType returns a slog attribute for a watch event type.
func EventType(t string) slog.Attr {
	return slog.String(KeyEventType, t)
}

// Status returns a slog attribute for an HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}

// Kind returns a slog attribute for a resource kind.
func Kind(kind string) slog.Attr {
	return slog.String(KeyKind, kind)
}

// Err returns a slog attribute for an error.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizedErr returns a slog attribute for an error with IP addresses
// redacted. Use it for errors that may embed API server addresses, which
// would otherwise leak network topology into logs.
func SanitizedErr(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, SanitizeHost(err.Error()))
}

// Host returns a slog attribute for a host with IP addresses redacted.
func Host(host string) slog.Attr {
	return slog.String(KeyHost, SanitizeHost(host))
}

// SanitizeHost redacts IPv4 and IPv6 addresses from a host or URL string
// while keeping hostnames and ports intact, so logs stay useful for
// debugging without exposing cluster addresses.
//
//	"https://192.168.1.100:6443" → "https://<redacted-ip>:6443"
//	"https://api.example.com:6443" → unchanged
//	"" → "<empty>"
func SanitizeHost(host string) string {
	if host == "" {
		return "<empty>"
	}

	redact := func(s string) string {
		s = ipv4Regex.ReplaceAllString(s, "<redacted-ip>")
		return ipv6Regex.ReplaceAllString(s, "<redacted-ip>")
	}

	if !strings.Contains(host, "://") {
		return redact(host)
	}

	parsed, err := url.Parse(host)
	if err != nil {
		return redact(host)
	}
	if ipv4Regex.MatchString(parsed.Host) || ipv6Regex.MatchString(parsed.Host) {
		parsed.Host = redact(parsed.Host)
		return parsed.String()
	}
	return host
}
