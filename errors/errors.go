// The errors package extends the standard error primitives with a list
// type used to accumulate non-fatal problems while work continues.
package errors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// New returns an error with the given text.
func New(text string) error {
	return errors.New(text)
}

// Errorf formats an error, supporting the %w verb.
func Errorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Unwrap returns the result of calling Unwrap on err, if available.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree matching target's type.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Errors collects several errors into one. A typical use is gathering
// per-object warnings during an encode that must not stop at the first
// problem.
type Errors []error

// Error joins the collected messages. A single entry formats as itself;
// several entries format as a count followed by one indented line per
// entry.
func (errs Errors) Error() string {
	switch len(errs) {
	case 0:
		return "no errors"
	case 1:
		return errs[0].Error()
	}
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(errs)))
	b.WriteString(" errors:")
	for _, err := range errs {
		b.WriteString("\n\t")
		b.WriteString(strings.ReplaceAll(err.Error(), "\n", "\n\t"))
	}
	return b.String()
}

// Append returns errs extended with the given errors, skipping nils.
func (errs Errors) Append(err ...error) Errors {
	for _, e := range err {
		if e != nil {
			errs = append(errs, e)
		}
	}
	return errs
}

// Return converts errs to a plain error result: nil when the list is
// empty, the list itself otherwise.
func (errs Errors) Return() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Union merges any number of errors into one. Arguments that are
// themselves Errors are flattened. The result is nil when nothing
// remains.
func Union(errs ...error) error {
	var merged Errors
	for _, err := range errs {
		switch err := err.(type) {
		case nil:
		case Errors:
			merged = merged.Append(err...)
		default:
			merged = append(merged, err)
		}
	}
	return merged.Return()
}
