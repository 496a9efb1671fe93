// Package errors holds the error types reported by the MAML document codec.
package errors

import "fmt"

// ParseError is a single syntax error and the position where it was found.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("maml: parsing error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// ParseErrors collects every syntax error found in one document.
type ParseErrors []ParseError

func (p ParseErrors) Error() string {
	switch len(p) {
	case 0:
		return ""
	case 1:
		return p[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", p[0].Error(), len(p)-1)
}

// Unwrap returns the individual errors so errors.As can reach a ParseError.
func (p ParseErrors) Unwrap() []error {
	errs := make([]error, len(p))
	for i, e := range p {
		errs[i] = e
	}
	return errs
}
