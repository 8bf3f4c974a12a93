package namelist

import "strings"

// ErrorList is an ordered collection of errors reported together. A nil or
// empty list is never returned as an error by the validators.
type ErrorList[T error] []T

// Error joins the text of every element with newlines, preserving order.
func (l ErrorList[T]) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes the elements to errors.Is and errors.As.
func (l ErrorList[T]) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Err returns l as an error, or nil when l is empty.
func (l ErrorList[T]) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
