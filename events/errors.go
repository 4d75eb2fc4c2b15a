package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ErrKind classifies a failed fetch.
type ErrKind string

const (
	ErrTimeout ErrKind = "timeout"
	ErrHTTP    ErrKind = "http"
	ErrNetwork ErrKind = "network"
	ErrDecode  ErrKind = "decode"
)

// FetchError is the typed failure a source adapter surfaces when a whole
// fetch could not produce a result. Per-record problems are not errors:
// adapters drop unparseable records and keep going.
type FetchError struct {
	Source Source
	Kind   ErrKind
	Status int
	err    error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case ErrHTTP:
		return fmt.Sprintf("%s: upstream returned status %d", e.Source, e.Status)
	case ErrTimeout:
		return fmt.Sprintf("%s: fetch timed out", e.Source)
	case ErrDecode:
		return fmt.Sprintf("%s: malformed upstream payload: %s", e.Source, e.err)
	}
	return fmt.Sprintf("%s: fetch failed: %s", e.Source, e.err)
}

func (e *FetchError) Unwrap() error {
	return e.err
}

// HTTPErr builds the error for a non-2xx upstream response.
func HTTPErr(src Source, status int) *FetchError {
	return &FetchError{Source: src, Kind: ErrHTTP, Status: status}
}

// ClassifyErr maps a transport or decoding error onto the fetch taxonomy.
func ClassifyErr(src Source, err error) *FetchError {
	var (
		netErr net.Error
		urlErr *url.Error
		synErr *json.SyntaxError
		typErr *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &synErr), errors.As(err, &typErr):
		return &FetchError{Source: src, Kind: ErrDecode, err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &FetchError{Source: src, Kind: ErrTimeout, err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &FetchError{Source: src, Kind: ErrTimeout, err: err}
	case errors.As(err, &urlErr):
		return &FetchError{Source: src, Kind: ErrNetwork, err: err}
	}
	return &FetchError{Source: src, Kind: ErrNetwork, err: err}
}
