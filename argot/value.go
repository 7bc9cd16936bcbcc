package argot

import (
	"fmt"
	"strconv"
	"time"
)

// ValueParser converts the raw text of a single argument occurrence into a
// typed value. A failed parse returns an error whose message is the
// human-readable reason surfaced in the resulting ParseError.
type ValueParser[T any] func(text string) (T, error)

// ValuePrinter renders a typed value back into its command-line text form.
// Printers are used for command identifiers (the printed form is the lookup
// key) and are available to external usage renderers for default values.
type ValuePrinter[T any] func(value T) string

// Standard parsers

// ParseString accepts any text verbatim.
func ParseString(text string) (string, error) {
	return text, nil
}

// ParseBool accepts the forms understood by strconv.ParseBool
// (1, t, T, TRUE, true, 0, f, false, ...).
func ParseBool(text string) (bool, error) {
	v, err := strconv.ParseBool(text)
	if err != nil {
		return false, fmt.Errorf("not a valid boolean: %q", text)
	}
	return v, nil
}

// ParseInt parses a decimal integer.
func ParseInt(text string) (int, error) {
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("not a valid integer: %q", text)
	}
	return v, nil
}

// ParseFloat parses a float64.
func ParseFloat(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("not a valid number: %q", text)
	}
	return v, nil
}

// ParseDuration parses a time.Duration in Go's "1h30m15s" notation.
func ParseDuration(text string) (time.Duration, error) {
	v, err := time.ParseDuration(text)
	if err != nil {
		return 0, fmt.Errorf("not a valid duration: %q", text)
	}
	return v, nil
}

// Standard printers

func PrintString(v string) string { return v }

func PrintBool(v bool) string { return strconv.FormatBool(v) }

func PrintInt(v int) string { return strconv.Itoa(v) }

func PrintFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func PrintDuration(v time.Duration) string { return v.String() }

// Combinators. Parsers compose by ordinary function composition; none of
// these allocate anything beyond the returned closure.

// Validated runs check on the parsed value and rejects the text when the
// check fails. The check's error message becomes the parse failure reason.
func Validated[T any](parse ValueParser[T], check func(T) error) ValueParser[T] {
	return func(text string) (T, error) {
		v, err := parse(text)
		if err != nil {
			return v, err
		}
		if err := check(v); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}
}

// Negated inverts a boolean parser. Inverse flag aliases use this
// composition so an explicit "--no-x=true" still means x=false.
func Negated(parse ValueParser[bool]) ValueParser[bool] {
	return func(text string) (bool, error) {
		v, err := parse(text)
		if err != nil {
			return false, err
		}
		return !v, nil
	}
}

// OneOf restricts a parser to a closed set of allowed values. The printer
// renders the allowed set in the failure reason.
func OneOf[T comparable](parse ValueParser[T], print ValuePrinter[T], allowed ...T) ValueParser[T] {
	return func(text string) (T, error) {
		v, err := parse(text)
		if err != nil {
			return v, err
		}
		for _, a := range allowed {
			if v == a {
				return v, nil
			}
		}
		var zero T
		names := make([]string, len(allowed))
		for i, a := range allowed {
			names[i] = print(a)
		}
		return zero, fmt.Errorf("%q is not one of %v", text, names)
	}
}
