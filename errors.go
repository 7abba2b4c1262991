package sarf

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by lookups exposed through APIs that need an error
// value for a miss. Lookup misses inside the library are plain values.
var ErrNotFound = errors.New("not found")

// LoadError indicates that a static resource could not be loaded.
type LoadError struct {
	Resource string // Resource name or location (path, URL)
	Cause    error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load %s: %v", e.Resource, e.Cause)
	}
	return fmt.Sprintf("load %s", e.Resource)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// RenderError indicates an HTML rendering failure.
type RenderError struct {
	Message  string
	Cause    error
	Fragment string // The fragment being rendered ("result", "tables", ...)
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error (%s): %s: %v", e.Fragment, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error (%s): %s", e.Fragment, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
