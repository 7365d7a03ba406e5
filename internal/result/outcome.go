package result

import "fmt"

// DefaultUnknownName labels a row whose index is absent from the mapping.
const DefaultUnknownName = "?"

// Variable is one solved decision variable: its display name and value.
type Variable struct {
	Index int
	Name  string
	Value float64
}

// Outcome is the decoded form of a solver response. The concrete types are
// Optimal, Unbounded, Infeasible and Unrecognized; no other type implements it.
type Outcome interface {
	// ResultType returns the tag the solver sent.
	ResultType() string
	outcome()
}

// Optimal carries the solved point. It is its own certificate of
// feasibility and optimality.
type Optimal struct {
	Point []Variable
}

// Unbounded carries a feasible point and a ray along which the objective
// improves without limit. Ray[i] shares its name with Point[i].
type Unbounded struct {
	Point []Variable
	Ray   []Variable
}

// Infeasible carries nothing: there is no numeric certificate to show.
type Infeasible struct{}

// Unrecognized is the catch-all for tags outside the three known ones. It is
// rendered like Optimal.
type Unrecognized struct {
	Tag   string
	Point []Variable
}

func (Optimal) ResultType() string        { return TypeOptimal }
func (Unbounded) ResultType() string      { return TypeUnbounded }
func (Infeasible) ResultType() string     { return TypeInfeasible }
func (u Unrecognized) ResultType() string { return u.Tag }

func (Optimal) outcome()      {}
func (Unbounded) outcome()    {}
func (Infeasible) outcome()   {}
func (Unrecognized) outcome() {}

// DecodeOptions tune Decode.
type DecodeOptions struct {
	// Strict rejects result types other than optimal, unbounded and
	// infeasible instead of decoding them as Unrecognized.
	Strict bool

	// UnknownName replaces a name missing from the mapping. Empty means
	// DefaultUnknownName.
	UnknownName string
}

// Decode validates a response against its resultType and builds the matching
// Outcome. Any violated field requirement is a *MalformedResponseError.
func Decode(resp *Response, opts DecodeOptions) (Outcome, error) {
	if resp == nil {
		return nil, &MalformedResponseError{Reason: "empty response"}
	}
	unknown := opts.UnknownName
	if unknown == "" {
		unknown = DefaultUnknownName
	}

	switch resp.ResultType {
	case TypeInfeasible:
		return Infeasible{}, nil

	case TypeOptimal:
		point, err := solvedPoint(resp, unknown)
		if err != nil {
			return nil, err
		}
		return Optimal{Point: point}, nil

	case TypeUnbounded:
		point, err := solvedPoint(resp, unknown)
		if err != nil {
			return nil, err
		}
		if resp.Certificate == nil {
			return nil, &MalformedResponseError{ResultType: resp.ResultType, Reason: "certificate is missing"}
		}
		if len(resp.Certificate) != len(resp.Solution) {
			return nil, &MalformedResponseError{
				ResultType: resp.ResultType,
				Reason:     fmt.Sprintf("certificate has %d entries, solution has %d", len(resp.Certificate), len(resp.Solution)),
			}
		}
		return Unbounded{Point: point, Ray: pair(resp.Certificate, point)}, nil

	default:
		if opts.Strict || resp.ResultType == "" {
			return nil, &MalformedResponseError{
				ResultType: resp.ResultType,
				Reason:     fmt.Sprintf("unrecognized resultType %q", resp.ResultType),
			}
		}
		point, err := solvedPoint(resp, unknown)
		if err != nil {
			return nil, err
		}
		return Unrecognized{Tag: resp.ResultType, Point: point}, nil
	}
}

// solvedPoint pairs solution[i] with mapping[i].
func solvedPoint(resp *Response, unknown string) ([]Variable, error) {
	if resp.Solution == nil {
		return nil, &MalformedResponseError{ResultType: resp.ResultType, Reason: "solution is missing"}
	}
	if resp.Mapping == nil {
		return nil, &MalformedResponseError{ResultType: resp.ResultType, Reason: "mapping is missing"}
	}
	if len(resp.Mapping) != len(resp.Solution) {
		return nil, &MalformedResponseError{
			ResultType: resp.ResultType,
			Reason:     fmt.Sprintf("mapping has %d names, solution has %d values", len(resp.Mapping), len(resp.Solution)),
		}
	}

	point := make([]Variable, len(resp.Solution))
	for i, v := range resp.Solution {
		name, ok := resp.Mapping[i]
		if !ok {
			name = unknown
		}
		point[i] = Variable{Index: i, Name: name, Value: v}
	}
	return point, nil
}

func pair(values []float64, names []Variable) []Variable {
	out := make([]Variable, len(values))
	for i, v := range values {
		out[i] = Variable{Index: i, Name: names[i].Name, Value: v}
	}
	return out
}
