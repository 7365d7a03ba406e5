// Package lp holds LP program source as the client handles it: opaque text.
//
// The client never tokenizes or validates a program. Whitespace, statement
// order and any mistakes go to the solver untouched; the solver owns the
// grammar below and reports violations as a rejected request.
package lp

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Grammar is the informal EBNF the solver service accepts.
const Grammar = `program    := statement+
statement  := decl | objective | constraint
decl       := "let" IDENT ";"
objective  := ("max" | "min") linexpr ";"
constraint := "s.t." linexpr relop NUMBER ";"
linexpr    := term (("+" | "-") term)*
term       := NUMBER "*" IDENT | IDENT
relop      := "<=" | ">=" | "="`

// Example is the bundled sample program.
const Example = "let x1;\nlet x2;\nmax 3 * x1 + 4 * x2;\ns.t. x1 + x2 <= 5;\nx1 >= 0;\nx2 >= 0;"

// ExampleNotes annotates Example line by line.
const ExampleNotes = "<- Declarations\n\n<- Objective (max or min)\n<- Constraints"

// Program is LP source text exactly as the user wrote it.
type Program struct {
	// Source names where the text came from (a path, "stdin", "editor").
	Source string
	Text   string
}

// New wraps text typed in place.
func New(source, text string) Program {
	return Program{Source: source, Text: text}
}

// Read loads a program without altering it.
func Read(source string, r io.Reader) (Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Program{}, fmt.Errorf("failed to read program from %s: %w", source, err)
	}
	return Program{Source: source, Text: string(data)}, nil
}

// ReadFile loads a program from disk. "-" reads stdin.
func ReadFile(path string) (Program, error) {
	if path == "-" {
		return Read("stdin", os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return Program{}, fmt.Errorf("failed to open program: %w", err)
	}
	defer f.Close()
	return Read(path, f)
}

// Blank reports whether the program has no non-space characters. Blank
// programs are still sent if the user asks; callers use this for hints only.
func (p Program) Blank() bool {
	return strings.TrimSpace(p.Text) == ""
}

// AnnotatedExample returns Example with ExampleNotes aligned to its right,
// the way the example dialog shows them side by side.
func AnnotatedExample() string {
	code := strings.Split(Example, "\n")
	notes := strings.Split(ExampleNotes, "\n")

	width := 0
	for _, line := range code {
		if len(line) > width {
			width = len(line)
		}
	}

	var sb strings.Builder
	for i, line := range code {
		note := ""
		if i < len(notes) {
			note = notes[i]
		}
		if note == "" {
			sb.WriteString(line)
		} else {
			fmt.Fprintf(&sb, "%-*s  %s", width, line, note)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
