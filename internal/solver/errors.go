package solver

import (
	"errors"
	"fmt"
	"strings"

	"simplex/internal/result"
)

// Kind classifies why a submission failed. The kinds never collapse into each
// other: a rejected program, a silent network and a request that was never
// built each surface differently.
type Kind int

const (
	KindUnknown Kind = iota
	KindServerRejected
	KindUnreachable
	KindRequestConstruction
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindServerRejected:
		return "server_rejected"
	case KindUnreachable:
		return "unreachable"
	case KindRequestConstruction:
		return "request_construction_failed"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Title is the human label shown next to a failure.
func (k Kind) Title() string {
	switch k {
	case KindServerRejected:
		return "Solver rejected the program"
	case KindUnreachable:
		return "No response from solver"
	case KindRequestConstruction:
		return "Could not build request"
	case KindMalformedResponse:
		return "Malformed solver response"
	default:
		return "Solve failed"
	}
}

var (
	ErrServerRejected      = errors.New("solver rejected the request")
	ErrUnreachable         = errors.New("no response from solver")
	ErrRequestConstruction = errors.New("could not build solve request")
)

// ServerRejectedError is a non-2xx reply. Body holds what the server sent.
type ServerRejectedError struct {
	StatusCode int
	Body       string
}

func (e *ServerRejectedError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("solver rejected the request with status %d", e.StatusCode)
	}
	return fmt.Sprintf("solver rejected the request with status %d: %s", e.StatusCode, body)
}

func (e *ServerRejectedError) Is(target error) bool { return target == ErrServerRejected }

// UnreachableError means the request left but no complete response came back.
type UnreachableError struct {
	Endpoint string
	Err      error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("no response from %s: %v", e.Endpoint, e.Err)
}

func (e *UnreachableError) Unwrap() error        { return e.Err }
func (e *UnreachableError) Is(target error) bool { return target == ErrUnreachable }

// RequestConstructionError means nothing was sent.
type RequestConstructionError struct {
	Err error
}

func (e *RequestConstructionError) Error() string {
	return fmt.Sprintf("could not build solve request: %v", e.Err)
}

func (e *RequestConstructionError) Unwrap() error        { return e.Err }
func (e *RequestConstructionError) Is(target error) bool { return target == ErrRequestConstruction }

// KindOf classifies err. Wrapped errors are classified by what they wrap.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrServerRejected):
		return KindServerRejected
	case errors.Is(err, ErrRequestConstruction):
		return KindRequestConstruction
	case errors.Is(err, ErrUnreachable):
		return KindUnreachable
	case errors.Is(err, result.ErrMalformedResponse):
		return KindMalformedResponse
	default:
		return KindUnknown
	}
}
