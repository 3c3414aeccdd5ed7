package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/five82/fitlog/internal/model"
)

// ErrNilClient is returned by methods invoked on a nil *Client.
var ErrNilClient = errors.New("client is nil")

// ErrorKind classifies API failures for the caller.
type ErrorKind int

const (
	KindUnauthenticated ErrorKind = iota + 1
	KindNetwork
	KindServerError
	KindClientError
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNetwork:
		return "network"
	case KindServerError:
		return "server error"
	case KindClientError:
		return "client error"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the failure half of every API call.
type Error struct {
	Kind    ErrorKind
	Status  int // HTTP status or envelope code; zero when no response arrived
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api %s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the ErrorKind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// IsUnauthenticated reports whether err means the user must log in again.
func IsUnauthenticated(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindUnauthenticated
}

// UserMessage renders err as a short sentence for display.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Kind == KindUnauthenticated {
			return "Please log in again: " + apiErr.Message
		}
		return apiErr.Message
	}
	var decodeErr *model.DecodeError
	if errors.As(err, &decodeErr) {
		return "Unexpected data from server: " + decodeErr.Error()
	}
	return err.Error()
}

func statusError(status int, body []byte) *Error {
	return classify(status, extractMessage(body))
}

// classify maps an HTTP status or envelope code onto an ErrorKind, filling in
// a generic message when the backend supplied none.
func classify(status int, msg string) *Error {
	msg = strings.TrimSpace(msg)
	switch {
	case status == http.StatusUnauthorized:
		if msg == "" {
			msg = "session expired or invalid credentials"
		}
		return &Error{Kind: KindUnauthenticated, Status: status, Message: msg}
	case status >= 500:
		if msg == "" {
			msg = fmt.Sprintf("server error (%d), try again later", status)
		}
		return &Error{Kind: KindServerError, Status: status, Message: msg}
	default:
		if msg == "" {
			msg = fmt.Sprintf("request failed (%d)", status)
		}
		return &Error{Kind: KindClientError, Status: status, Message: msg}
	}
}

func transportError(ctx context.Context, err error) *Error {
	msg := "network unavailable, check your connection"
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		msg = "request cancelled"
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		msg = "request timed out"
	default:
		var timeout interface{ Timeout() bool }
		if errors.As(err, &timeout) && timeout.Timeout() {
			msg = "request timed out"
		}
	}
	return &Error{Kind: KindNetwork, Message: msg, Err: err}
}

func decodeError(err error) *Error {
	return &Error{Kind: KindDecode, Message: "malformed response from server", Err: err}
}

// extractMessage pulls the best human-readable message out of an error body.
func extractMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	var parsed errorBody
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		if trimmed[0] == '{' || trimmed[0] == '[' {
			return ""
		}
		return firstLine(string(trimmed))
	}
	if msg := detailMessage(parsed.Detail); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(parsed.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(parsed.Error)
}

func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var entries []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &entries); err == nil {
		msgs := make([]string, 0, len(entries))
		for _, e := range entries {
			if m := strings.TrimSpace(e.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	const maxLen = 200
	s = strings.TrimSpace(s)
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}
