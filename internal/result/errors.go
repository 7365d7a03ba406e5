package result

import "errors"

// ErrMalformedResponse matches every MalformedResponseError via errors.Is.
var ErrMalformedResponse = errors.New("malformed solver response")

// MalformedResponseError reports a response that arrived but cannot back the
// outcome its resultType claims: missing vectors, misaligned lengths, or an
// undecodable body.
type MalformedResponseError struct {
	ResultType string
	Reason     string
}

func (e *MalformedResponseError) Error() string {
	if e.ResultType == "" {
		return "malformed solver response: " + e.Reason
	}
	return "malformed solver response (" + e.ResultType + "): " + e.Reason
}

// Is lets callers test with errors.Is(err, ErrMalformedResponse).
func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}
