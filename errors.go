package actionopts

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeIntegerOption         = "integer_option"
	CodePositiveIntegerOption = "positive_integer_option"
	CodeBooleanOption         = "boolean_option"
	CodeSpeedOption           = "speed_option"
	// Failures from predicates that do not report Issues themselves
	CodeInvalidOption = "invalid_option"
	// Input decoding (raw options arriving from JSON/YAML)
	CodeParseError   = "parse_error"
	CodeInvalidInput = "invalid_input"
	CodeDuplicateKey = "duplicate_key"
)

// Option categories used by the built-in error kinds.
const (
	CategoryAction    = "action"
	CategoryAssertion = "assertion"
)

// Issue represents a single validation failure.
type Issue struct {
	Path     string // JSON Pointer (for example: /modifiers/ctrl).
	Field    string // Display name of the option (for example: modifiers.ctrl).
	Category string // Option category of the error kind (action, assertion, ...).
	Code     string // One of the codes listed above.
	Message  string
	Cause    error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"actual":"1.5", "min":0.01})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		if it.Message != "" {
			b.WriteString(it.Message)
			continue
		}
		// e.g. integer_option at /offsetX
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func singleIssue(code, msg string, cause error) Issues {
	return AppendIssues(nil, Issue{Path: "/", Code: code, Message: msg, Cause: cause})
}
