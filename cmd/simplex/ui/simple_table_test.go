package ui

import (
	"strings"
	"testing"

	"simplex/internal/result"
)

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Test Table", []string{"Col1", "Col2"})
	table.AddRow("Row1Col1", "Row1Col2")

	view := table.View(NewStyles(LightTheme()))

	if !strings.Contains(view, "Test Table") {
		t.Error("View missing title")
	}
	if !strings.Contains(view, "Row1Col1") {
		t.Error("View missing cell content")
	}
}

func TestSimpleTable_Empty(t *testing.T) {
	view := NewSimpleTable("Solution", []string{"Variable", "Value"}).View(NewStyles(LightTheme()))
	if !strings.Contains(view, "no variables") {
		t.Errorf("empty table should render a placeholder:\n%s", view)
	}
}

func TestCertificateView(t *testing.T) {
	c := result.Certificate{
		ResultType: result.TypeUnbounded,
		Headline:   "Result is unbounded",
		Equations: []result.Equation{
			{Label: result.LabelSolution, Rows: []result.Row{{Name: "x1", Value: 0}, {Name: "x2", Value: 2.5}}},
			{Label: result.LabelRay, Rows: []result.Row{{Name: "x1", Value: 1}, {Name: "x2", Value: 0}}},
		},
	}

	view := CertificateView(c, NewStyles(DarkTheme()))
	for _, want := range []string{"Result is unbounded", "Solution", "Unbounded ray", "x2", "2.5"} {
		if !strings.Contains(view, want) {
			t.Errorf("CertificateView missing %q:\n%s", want, view)
		}
	}
	if strings.Index(view, "Solution") > strings.Index(view, "Unbounded ray") {
		t.Error("solution must come before the ray")
	}
}

func TestCertificateView_Infeasible(t *testing.T) {
	view := CertificateView(result.Certificate{ResultType: result.TypeInfeasible, Headline: "Result is infeasible"}, NewStyles(LightTheme()))
	if !strings.Contains(view, "Result is infeasible") {
		t.Errorf("missing headline:\n%s", view)
	}
	if strings.Contains(view, "Variable") {
		t.Error("infeasible has no tables")
	}
}
