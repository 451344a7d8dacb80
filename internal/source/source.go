package source

import (
	"context"
	"errors"
	"fmt"
)

// Names of the built-in sources.
const (
	NameDog = "dog"
	NameCat = "cat"
)

// Default endpoints for the built-in sources.
const (
	DefaultDogEndpoint = "https://dog.ceo/api/breeds/image/random"
	DefaultCatEndpoint = "https://api.thecatapi.com/v1/images/search"
)

// Source fetches a single random image URL from a remote API.
// Dog and Cat implement this interface. Tests can provide fakes.
type Source interface {
	Name() string
	FetchImage(ctx context.Context) (string, error)
}

// HTTPError reports a non-2xx response from the image endpoint.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

// MalformedResponseError reports a response body that did not match the
// shape expected for its source.
type MalformedResponseError struct {
	Source string
	Detail string
}

func (e *MalformedResponseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invalid response from %s API", e.Source)
	}
	return fmt.Sprintf("invalid response from %s API: %s", e.Source, e.Detail)
}

// NetworkError wraps a transport-level failure (DNS, refused connection,
// timeout, cancellation).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Error kinds reported by Kind.
const (
	KindOK        = "ok"
	KindHTTP      = "http"
	KindMalformed = "malformed"
	KindNetwork   = "network"
)

// Kind classifies err into one of the Kind* constants. Errors that are not
// part of the adapter taxonomy are reported as network failures.
func Kind(err error) string {
	if err == nil {
		return KindOK
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return KindHTTP
	}
	var malformed *MalformedResponseError
	if errors.As(err, &malformed) {
		return KindMalformed
	}
	return KindNetwork
}

// New returns the built-in source for name, or an error for unknown names.
func New(name string, opts ...Option) (Source, error) {
	switch name {
	case NameDog:
		return NewDog(opts...), nil
	case NameCat:
		return NewCat(opts...), nil
	default:
		return nil, fmt.Errorf("unknown source %q (want %q or %q)", name, NameDog, NameCat)
	}
}
