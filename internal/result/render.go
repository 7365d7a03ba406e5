package result

import (
	"math"
	"strconv"
	"strings"
)

// Equation labels.
const (
	LabelSolution = "Solution"
	LabelRay      = "Unbounded ray"
)

// Row is one line of an equation: Name = Value.
type Row struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Equation is a column of variable names set equal to a column of values.
type Equation struct {
	Label string `json:"label"`
	Rows  []Row  `json:"rows"`
}

// LHS returns the name column.
func (e Equation) LHS() []string {
	out := make([]string, len(e.Rows))
	for i, r := range e.Rows {
		out[i] = r.Name
	}
	return out
}

// RHS returns the value column, formatted.
func (e Equation) RHS() []string {
	out := make([]string, len(e.Rows))
	for i, r := range e.Rows {
		out[i] = FormatNumber(r.Value)
	}
	return out
}

// Certificate is the rendered, display-ready form of an Outcome.
type Certificate struct {
	ResultType string     `json:"resultType"`
	Headline   string     `json:"headline"`
	Equations  []Equation `json:"equations"`
}

// Render turns an outcome into its certificate. It is a pure function of the
// outcome.
func Render(o Outcome) Certificate {
	switch v := o.(type) {
	case Optimal:
		return Certificate{
			ResultType: TypeOptimal,
			Headline:   Headline(TypeOptimal),
			Equations:  []Equation{equation(LabelSolution, v.Point)},
		}
	case Unbounded:
		return Certificate{
			ResultType: TypeUnbounded,
			Headline:   Headline(TypeUnbounded),
			Equations: []Equation{
				equation(LabelSolution, v.Point),
				equation(LabelRay, v.Ray),
			},
		}
	case Unrecognized:
		return Certificate{
			ResultType: v.Tag,
			Headline:   Headline(v.Tag),
			Equations:  []Equation{equation(LabelSolution, v.Point)},
		}
	case Infeasible:
		// Nothing to certify.
		return Certificate{
			ResultType: TypeInfeasible,
			Headline:   Headline(TypeInfeasible),
		}
	default:
		return Certificate{}
	}
}

// Headline is the one-line textual outcome, e.g. "Result is infeasible".
func Headline(resultType string) string {
	return "Result is " + resultType
}

func equation(label string, vars []Variable) Equation {
	rows := make([]Row, len(vars))
	for i, v := range vars {
		rows[i] = Row{Name: v.Name, Value: v.Value}
	}
	return Equation{Label: label, Rows: rows}
}

// FormatNumber prints the shortest decimal that round-trips to v, spelled
// the way a browser prints a number: plain digits from 1e-6 up to 1e21,
// exponent form ("1e-7", "1e+21") outside that range.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0" // also -0
	}
	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s // NaN, Inf
	}
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
