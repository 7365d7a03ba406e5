// Package result interprets solver responses and renders their certificates.
//
// A response is decoded once into an Outcome (a closed set of variants), at
// which point every field the variant relies on has been checked. Rendering
// an Outcome is then total: it never indexes a vector the outcome does not
// carry.
package result

import (
	"encoding/json"
	"fmt"
	"io"
)

// Result types understood by the renderer. Matching is exact and case-sensitive.
const (
	TypeOptimal    = "optimal"
	TypeUnbounded  = "unbounded"
	TypeInfeasible = "infeasible"
)

// Response is the JSON body returned by the solver service.
//
// Mapping keys are variable indices in declaration order. encoding/json
// decodes the object keys ("0", "1", ...) into ints and rejects anything else.
type Response struct {
	Solution    []float64      `json:"solution"`
	ResultType  string         `json:"resultType"`
	Certificate []float64      `json:"certificate"`
	Mapping     map[int]string `json:"mapping"`
}

// ParseResponse decodes a solver response body.
func ParseResponse(r io.Reader) (*Response, error) {
	var resp Response
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, &MalformedResponseError{Reason: fmt.Sprintf("invalid JSON body: %v", err)}
	}
	return &resp, nil
}
