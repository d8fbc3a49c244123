package catalog

import (
	"errors"
	"fmt"
)

// ErrDuplicateSymbol matches every *DuplicateSymbolError with errors.Is.
var ErrDuplicateSymbol = errors.New("duplicate symbol")

// DuplicateSymbolError reports two different fully-qualified names
// resolving to the same namespace and short name.
type DuplicateSymbolError struct {
	Namespace string
	Name      string
	Existing  string
	Incoming  string
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("duplicate symbol %q in namespace %q: %q conflicts with %q",
		e.Name, e.Namespace, e.Incoming, e.Existing)
}

func (e *DuplicateSymbolError) Unwrap() error {
	return ErrDuplicateSymbol
}
