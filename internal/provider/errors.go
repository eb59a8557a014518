package provider

import (
    "fmt"
    "net/http"
)

// Kind classifies a single failed provider attempt.
type Kind string

const (
    KindNetwork      Kind = "network"
    KindRateLimit    Kind = "rate_limit"
    KindUnauthorized Kind = "unauthorized"
    KindParseFailure Kind = "parse_failure"
    KindUnknown      Kind = "unknown"
)

// Error is one failed attempt against one provider. Adapters return it
// instead of plain errors so the resolver can keep a typed trail.
type Error struct {
    Provider ID     `json:"provider"`
    Kind     Kind   `json:"kind"`
    Message  string `json:"message"`

    err error
}

func (e *Error) Error() string {
    return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// Errorf builds an Error with a formatted message.
func Errorf(p ID, kind Kind, format string, args ...any) *Error {
    return &Error{Provider: p, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapErr builds an Error around an underlying error, keeping it for Unwrap.
func WrapErr(p ID, kind Kind, err error) *Error {
    return &Error{Provider: p, Kind: kind, Message: err.Error(), err: err}
}

// KindFromStatus maps a non-2xx HTTP status to an error kind.
func KindFromStatus(status int) Kind {
    switch status {
    case http.StatusTooManyRequests:
        return KindRateLimit
    case http.StatusUnauthorized, http.StatusForbidden:
        return KindUnauthorized
    default:
        return KindUnknown
    }
}
