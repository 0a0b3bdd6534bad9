// Package validation checks request fields, generated text and rendered
// documents. Findings are advisory: callers log them and carry on.
package validation

import "fmt"

// Error represents a general validation error
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// BudgetViolation reports a document that renders to more pages than its
// type allows.
type BudgetViolation struct {
	DocType string
	Pages   int
	Budget  int
}

func (e *BudgetViolation) Error() string {
	return fmt.Sprintf("%s rendered to %d pages, budget is %d", e.DocType, e.Pages, e.Budget)
}
