// Package redact removes sensitive fragments from strings before they are
// logged. Raw errors from the database and the AWS SDKs can carry connection
// strings, credentials, tokens, emails and SQL text; everything that leaves
// a handler through a log line passes through here first.
package redact

import "regexp"

// Placeholders substituted for matched fragments.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	KeyPlaceholder        = "[REDACTED_KEY]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	ARNPlaceholder        = "[REDACTED_ARN]"
	HostPlaceholder       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules are applied in order; earlier rules see the original text.
var rules = []rule{
	// Connection strings with inline credentials.
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`), CredentialPlaceholder},

	// Passwords and secrets in key=value or key: value form.
	{regexp.MustCompile(`(?i)(password|passwd|pwd|client_secret|secret)([=:\s]['"]?)[^'"&\s]{3,}`), CredentialPlaceholder},

	// AWS access key IDs and generic API keys.
	{regexp.MustCompile(`\bAKIA[A-Z0-9]{8,}\b`), KeyPlaceholder},
	{regexp.MustCompile(`(?i)(api[_-]?key|access[_-]?key|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), KeyPlaceholder},

	// Cognito / JWT bearer tokens (three dot-separated base64url parts).
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), TokenPlaceholder},

	// AWS resource ARNs identify accounts and topics.
	{regexp.MustCompile(`\barn:aws:[a-z0-9-]+:[a-z0-9-]*:\d{6,}:[^\s'"]+`), ARNPlaceholder},

	// Recipient addresses are PII.
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), EmailPlaceholder},

	// SQL statements leaked from driver errors.
	{regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE)[\s\w,*()='"$]*`), SQLPlaceholder},

	// host:port pairs from network errors.
	{regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}:\d{1,5}\b`), HostPlaceholder},
}

// String redacts sensitive fragments from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive fragments from an error's message.
// Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
