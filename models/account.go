package models

import "regexp"

// Account IDs follow the NEAR naming rules: 2-64 characters, lowercase
// alphanumeric segments joined by single '.', '-' or '_' separators.
var accountIDPattern = regexp.MustCompile(`^(([a-z\d]+[\-_])*[a-z\d]+\.)*([a-z\d]+[\-_])*[a-z\d]+$`)

const (
	minAccountIDLen = 2
	maxAccountIDLen = 64
)

// ValidAccountID report whether s is a well-formed account ID
func ValidAccountID(s string) bool {
	if len(s) < minAccountIDLen || len(s) > maxAccountIDLen {
		return false
	}
	return accountIDPattern.MatchString(s)
}
