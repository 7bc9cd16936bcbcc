package argot

import (
	"fmt"
	"strings"
)

// ErrorType categorizes parse failures. The set is closed so callers can
// branch on it; every error the state machine returns carries one of these.
type ErrorType string

const (
	ErrorTypeUnknownOption      ErrorType = "unknown_option"
	ErrorTypeUnknownCommand     ErrorType = "unknown_command"
	ErrorTypeMissingCommand     ErrorType = "missing_command"
	ErrorTypeMissingPositionals ErrorType = "missing_positionals"
	ErrorTypeMissingOptionValue ErrorType = "missing_option_value"
	ErrorTypeTooManyPositionals ErrorType = "too_many_positionals"
	ErrorTypeInvalidValue       ErrorType = "invalid_value"
)

// ParseError is the structured error the state machine returns. The core
// never prints or exits; rendering the message and choosing an exit code is
// the CLI wrapper's job.
type ParseError struct {
	Type       ErrorType
	Message    string
	Option     string   // offending option name, as typed (without prefix)
	Command    string   // offending command token
	Argument   string   // definition name for invalid_value
	Value      string   // raw text for invalid_value
	Reason     string   // parser-supplied reason for invalid_value
	Missing    []string // unmet names for missing_positionals
	Suggestion string   // best fuzzy match for unknown_option/unknown_command
}

func (e *ParseError) Error() string {
	return e.Message
}

func newUnknownOptionError(display, name string, candidates []string) *ParseError {
	return &ParseError{
		Type:       ErrorTypeUnknownOption,
		Message:    "unknown option: " + display,
		Option:     name,
		Suggestion: suggestOption(name, candidates),
	}
}

func newUnknownCommandError(name string, candidates []string) *ParseError {
	return &ParseError{
		Type:       ErrorTypeUnknownCommand,
		Message:    "unknown command: " + name,
		Command:    name,
		Suggestion: suggestCommand(name, candidates),
	}
}

func newMissingCommandError() *ParseError {
	return &ParseError{
		Type:    ErrorTypeMissingCommand,
		Message: "expected a command",
	}
}

func newMissingPositionalsError(names []string) *ParseError {
	return &ParseError{
		Type:    ErrorTypeMissingPositionals,
		Message: "missing required arguments: " + strings.Join(names, ", "),
		Missing: names,
	}
}

func newMissingOptionValueError(display string) *ParseError {
	return &ParseError{
		Type:    ErrorTypeMissingOptionValue,
		Message: "option requires a value: " + display,
		Option:  display,
	}
}

func newTooManyPositionalsError(token string) *ParseError {
	return &ParseError{
		Type:    ErrorTypeTooManyPositionals,
		Message: "unexpected argument: " + token,
		Value:   token,
	}
}

func newInvalidValueError(name, raw string, reason error) *ParseError {
	return &ParseError{
		Type:     ErrorTypeInvalidValue,
		Message:  fmt.Sprintf("invalid value for %s: %s", name, reason),
		Argument: name,
		Value:    raw,
		Reason:   reason.Error(),
	}
}

// SetupErrorType categorizes schema-construction failures. These are
// programmer bugs caught during registration, never at parse time, so they
// are a family distinct from ParseError.
type SetupErrorType string

const (
	SetupDuplicateName    SetupErrorType = "duplicate_name"
	SetupDuplicateShort   SetupErrorType = "duplicate_short"
	SetupBadOrdering      SetupErrorType = "bad_ordering"
	SetupVariadicNotLast  SetupErrorType = "variadic_not_last"
	SetupCommandSetExists SetupErrorType = "command_set_exists"
	SetupDuplicateCommand SetupErrorType = "duplicate_command"
	SetupFrozen           SetupErrorType = "frozen"
)

// SetupError reports an invalid registration call.
type SetupError struct {
	Type    SetupErrorType
	Name    string
	Message string
}

func (e *SetupError) Error() string {
	return e.Message
}

func newSetupError(typ SetupErrorType, name, format string, args ...any) *SetupError {
	return &SetupError{
		Type:    typ,
		Name:    name,
		Message: fmt.Sprintf(format, args...),
	}
}
