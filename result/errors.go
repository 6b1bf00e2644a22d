package result

import (
	"strconv"
	"strings"
)

// ErrorCategory represents the classification of a crawler error text.
type ErrorCategory string

const (
	CategoryTimeout           ErrorCategory = "timeout"
	CategoryDNSFailure        ErrorCategory = "dns_failure"
	CategoryConnectionRefused ErrorCategory = "connection_refused"
	Category4xx               ErrorCategory = "4xx"
	Category5xx               ErrorCategory = "5xx"
	CategoryRedirectLoop      ErrorCategory = "redirect_loop"
	CategoryUnknown           ErrorCategory = "unknown"
)

// ErrorCode returns the first whitespace-delimited token of an error text,
// which is either a numeric HTTP status or a keyword.
func ErrorCode(errorText string) string {
	fields := strings.Fields(errorText)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// CategorizeError determines the error category of a crawler error text.
func CategorizeError(errorText string) ErrorCategory {
	// Status codes first
	if status, err := strconv.Atoi(ErrorCode(errorText)); err == nil {
		switch {
		case status >= 400 && status <= 499:
			return Category4xx
		case status >= 500 && status <= 599:
			return Category5xx
		}
	}

	lower := strings.ToLower(errorText)
	switch {
	case strings.Contains(lower, "redirect"):
		return CategoryRedirectLoop
	case strings.Contains(lower, "timeout"), strings.Contains(lower, "deadline exceeded"):
		return CategoryTimeout
	case strings.Contains(lower, "no such host"), strings.Contains(lower, "server misbehaving"):
		return CategoryDNSFailure
	case strings.Contains(lower, "connection refused"):
		return CategoryConnectionRefused
	}
	return CategoryUnknown
}

// FormatCategory returns a human-readable label for an error category.
func FormatCategory(cat ErrorCategory) string {
	switch cat {
	case CategoryTimeout:
		return "Timeouts"
	case CategoryDNSFailure:
		return "DNS Failures"
	case CategoryConnectionRefused:
		return "Connection Refused"
	case Category4xx:
		return "Client Errors (4xx)"
	case Category5xx:
		return "Server Errors (5xx)"
	case CategoryRedirectLoop:
		return "Redirect Loops"
	default:
		return "Other Errors"
	}
}
