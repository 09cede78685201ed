package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failure. The set is closed.
type Kind string

const (
	// KindSyncSourceUnavailable means a remote page could not be fetched; the pass applied nothing.
	KindSyncSourceUnavailable Kind = "SYNC_SOURCE_UNAVAILABLE"
	// KindLocalApplyFailure means a single mirror write failed and was skipped.
	KindLocalApplyFailure Kind = "LOCAL_APPLY_FAILURE"
	// KindShipmentNotFound means the shipment exists neither in the mirror nor remotely.
	KindShipmentNotFound Kind = "SHIPMENT_NOT_FOUND"
	// KindValidation means the request was rejected before any remote call.
	KindValidation Kind = "VALIDATION_ERROR"
	// KindDuplicateKey means the remote returned the same id on more than one page.
	KindDuplicateKey Kind = "DUPLICATE_KEY_ANOMALY"
	// KindRemoteRejected means the remote answered a mutating call with a non-success response.
	KindRemoteRejected Kind = "REMOTE_REJECTED"
)

// Error is the structured error carried through the gateway.
type Error struct {
	Kind    Kind
	Message string
	// ID is the shipment id involved, if any.
	ID string
	// Page is the remote page number involved, if any.
	Page int
	// Fields holds per-field validation messages.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.ID != "" {
		fmt.Fprintf(&b, " (id=%s)", e.ID)
	}
	if e.Page > 0 {
		fmt.Fprintf(&b, " (page=%d)", e.Page)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so errors.Is(err, &Error{Kind: k}) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// SourceUnavailable reports a failed remote page fetch.
func SourceUnavailable(page int, err error) *Error {
	return &Error{Kind: KindSyncSourceUnavailable, Message: "remote page fetch failed", Page: page, Err: err}
}

// ApplyFailure reports a failed mirror write for one record.
func ApplyFailure(op, id string, err error) *Error {
	return &Error{Kind: KindLocalApplyFailure, Message: op + " failed", ID: id, Err: err}
}

// NotFound reports a shipment missing locally and remotely.
func NotFound(id string) *Error {
	return &Error{Kind: KindShipmentNotFound, Message: "shipment not found", ID: id}
}

// Validation reports rejected input.
func Validation(msg string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// DuplicateKey reports an id seen on more than one remote page.
func DuplicateKey(id string, page int) *Error {
	return &Error{Kind: KindDuplicateKey, Message: "duplicate id in remote listing", ID: id, Page: page}
}

// RemoteRejected reports a non-success answer to a mutating remote call.
func RemoteRejected(op, id string, err error) *Error {
	return &Error{Kind: KindRemoteRejected, Message: "remote rejected " + op, ID: id, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error to the status code returned to API clients.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindShipmentNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindSyncSourceUnavailable:
		return http.StatusServiceUnavailable
	case KindRemoteRejected:
		return http.StatusBadGateway
	case KindDuplicateKey:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
