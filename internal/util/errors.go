package util

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used throughout mstctl
var (
	ErrNoAPIKey        = errors.New("no API key configured")
	ErrNoAPIURL        = errors.New("no API URL configured")
	ErrNoAgent         = errors.New("no agent configured")
	ErrRowBusy         = errors.New("a command for this row is already in flight")
	ErrStatusForbidden = errors.New("command not allowed from the row's current status")
	ErrUnknownCommand  = errors.New("unknown row command")
	ErrSnapshotMissing = errors.New("snapshot not found")
)

// CLIError is a structured error with context and suggestions
type CLIError struct {
	Title       string   // Short error title
	Message     string   // Detailed message
	Context     string   // What was being attempted
	Causes      []string // Possible causes
	Suggestions []string // Actionable suggestions with commands
	Err         error    // Wrapped error
}

func (e *CLIError) Error() string {
	return e.Title
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// Format returns a nicely formatted error message
func (e *CLIError) Format() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Title))

	if e.Message != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Message))
	}
	if e.Context != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Context))
	}

	if len(e.Causes) > 0 {
		sb.WriteString("\n  Possible causes:\n")
		for _, cause := range e.Causes {
			sb.WriteString(fmt.Sprintf("    • %s\n", cause))
		}
	}

	if len(e.Suggestions) > 0 {
		sb.WriteString("\n  Try:\n")
		for _, sug := range e.Suggestions {
			sb.WriteString(fmt.Sprintf("    $ %s\n", sug))
		}
	}

	return sb.String()
}

// NewError creates a new CLIError
func NewError(title string) *CLIError {
	return &CLIError{Title: title}
}

// WithMessage adds a detailed message
func (e *CLIError) WithMessage(msg string) *CLIError {
	e.Message = msg
	return e
}

// WithContext adds context about what was being attempted
func (e *CLIError) WithContext(ctx string) *CLIError {
	e.Context = ctx
	return e
}

// WithCause adds a possible cause
func (e *CLIError) WithCause(cause string) *CLIError {
	e.Causes = append(e.Causes, cause)
	return e
}

// WithSuggestion adds an actionable suggestion
func (e *CLIError) WithSuggestion(sug string) *CLIError {
	e.Suggestions = append(e.Suggestions, sug)
	return e
}

// WithErr wraps an underlying error
func (e *CLIError) WithErr(err error) *CLIError {
	e.Err = err
	return e
}

// MissingAPIKeyError builds the standard error for an unconfigured API key.
func MissingAPIKeyError() *CLIError {
	return NewError("No API key configured").
		WithMessage("mstctl needs a Molt Street API key to talk to the exchange.").
		WithCause("api.key is empty in the config file and MSTCTL_API_KEY is unset").
		WithSuggestion(`mstctl config set api.key "mst_..."`).
		WithSuggestion("MSTCTL_API_KEY=mst_... mstctl markets").
		WithErr(ErrNoAPIKey)
}

// APIUnreachableError builds the standard error for a failed request.
func APIUnreachableError(url string, err error) *CLIError {
	return NewError("Could not reach the Molt Street API").
		WithContext(fmt.Sprintf("Requesting %s", url)).
		WithCause("The API server is down or the URL is wrong").
		WithCause("A proxy or firewall is blocking the request").
		WithSuggestion("mstctl config get api.url").
		WithErr(err)
}
