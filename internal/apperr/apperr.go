// Package apperr classifies claudectx failures so callers can tell a missing
// profile from a corrupt file without parsing messages.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the failure class of an Error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindMissingLiveConfig
	KindParseFailure
	KindFilesystem
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindMissingLiveConfig:
		return "missing live config"
	case KindParseFailure:
		return "parse failure"
	case KindFilesystem:
		return "filesystem failure"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Any *Error of the matching Kind compares equal.
var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrMissingLiveConfig = &Error{Kind: KindMissingLiveConfig}
	ErrParseFailure      = &Error{Kind: KindParseFailure}
	ErrFilesystem        = &Error{Kind: KindFilesystem}
)

// Error is a classified failure. Msg is the user-facing text; Err, when set,
// is the underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// NotFound reports a missing profile, named by its slug.
func NotFound(slug string) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf("profile '%s' not found", slug)}
}

// MissingLiveConfig reports that the live config does not exist at path.
func MissingLiveConfig(path string) error {
	return &Error{
		Kind: KindMissingLiveConfig,
		Msg:  fmt.Sprintf("no Claude config at %s - is Claude Code installed and logged in?", path),
	}
}

// Parse wraps a JSON or YAML decoding failure for the file at path.
func Parse(path string, err error) error {
	return &Error{Kind: KindParseFailure, Msg: fmt.Sprintf("parsing %s", path), Err: err}
}

// Filesystem wraps an I/O failure. op is a short gerund such as "reading".
func Filesystem(op, path string, err error) error {
	return &Error{Kind: KindFilesystem, Msg: fmt.Sprintf("%s %s", op, path), Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
