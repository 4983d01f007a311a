package pushover

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for classification with errors.Is. Every error returned by
// Client matches exactly one of them.
var (
	ErrValidation = errors.New("pushover: invalid argument")
	ErrAttachment = errors.New("pushover: attachment unavailable")
	ErrRequest    = errors.New("pushover: request failed")
)

var (
	errIsDirectory        = errors.New("is a directory")
	errAttachmentTooLarge = fmt.Errorf("exceeds %d bytes", MaxAttachmentSize)
)

// ValidationError reports a missing or out-of-range argument. It is returned
// before any file or network I/O happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pushover: invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// AttachmentError reports an attachment that cannot be opened or sent.
type AttachmentError struct {
	Path string
	Err  error
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("pushover: attachment %q: %v", e.Path, e.Err)
}

func (e *AttachmentError) Unwrap() error {
	return e.Err
}

func (e *AttachmentError) Is(target error) bool {
	return target == ErrAttachment
}

// RequestError reports a transport failure or a non-2xx answer from the API.
// StatusCode is zero when no response was received.
type RequestError struct {
	Op         string
	StatusCode int
	Errors     []string
	RequestID  string
	Err        error
}

func (e *RequestError) Error() string {
	var b strings.Builder
	b.WriteString("pushover: failed to ")
	b.WriteString(e.Op)

	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
		if len(e.Errors) > 0 {
			b.WriteString(": ")
			b.WriteString(strings.Join(e.Errors, "; "))
		} else if e.Err == nil {
			b.WriteString(" ")
			b.WriteString(http.StatusText(e.StatusCode))
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequest
}
