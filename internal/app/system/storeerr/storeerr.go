// internal/app/system/storeerr/storeerr.go
package storeerr

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// Kind classifies backing-store failures into the few categories the rest
// of the system reacts to. Everything else is an opaque write/read failure
// that propagates to the caller.
type Kind int

const (
	// KindUnknown is any failure without an automatic recovery path.
	KindUnknown Kind = iota

	// KindIndexNotConfigured means a query needed a server-side index on
	// the filtered field and the collection does not have one. This is a
	// configuration error, not a data error, and it is the only kind with
	// an automatic recovery path (the full-scan fallback).
	KindIndexNotConfigured

	// KindDuplicate is a unique-index violation.
	KindDuplicate
)

// Mongo server error codes we care about.
const (
	codeBadValue             = 2   // e.g. hint names a nonexistent index
	codeDuplicateKey         = 11000
	codeNoQueryExecutionPlan = 291 // planner could not satisfy the hint
)

// indexError wraps a raw store error with the IndexNotConfigured kind so
// callers can test for it with errors.Is/As without string matching.
type indexError struct {
	err error
}

func (e *indexError) Error() string { return "index not configured: " + e.err.Error() }
func (e *indexError) Unwrap() error { return e.err }

// ErrIndexNotConfigured is the sentinel for errors.Is checks.
var ErrIndexNotConfigured = errors.New("index not configured")

func (e *indexError) Is(target error) bool { return target == ErrIndexNotConfigured }

// AsIndexNotConfigured wraps err so that Classify and errors.Is report it
// as an index-configuration error. Used by the query layer when the
// capability probe finds the required index missing.
func AsIndexNotConfigured(err error) error {
	if err == nil {
		return nil
	}
	return &indexError{err: err}
}

// Classify maps a raw store error to a Kind. Structured codes are checked
// first; the message fallback covers DocumentDB-style servers that report
// hint rejections without the standard code.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	if errors.Is(err, ErrIndexNotConfigured) {
		return KindIndexNotConfigured
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case codeNoQueryExecutionPlan:
			return KindIndexNotConfigured
		case codeBadValue:
			if strings.Contains(ce.Message, "hint") {
				return KindIndexNotConfigured
			}
		case codeDuplicateKey:
			return KindDuplicate
		}
	}

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == codeDuplicateKey {
				return KindDuplicate
			}
		}
	}

	s := err.Error()
	if strings.Contains(s, "hint provided does not correspond to an existing index") {
		return KindIndexNotConfigured
	}

	return KindUnknown
}
