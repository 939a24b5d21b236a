package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Username: letters, digits and a few separators, Django-style
	UsernamePattern = `^[a-zA-Z0-9_@+.\-]{3,150}$`

	// Hourly rate: non-negative decimal with at most 2 fraction digits
	HourlyRatePattern = `^\d{1,4}(\.\d{1,2})?$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Username   *regexp.Regexp
	HourlyRate *regexp.Regexp
}{
	Username:   regexp.MustCompile(UsernamePattern),
	HourlyRate: regexp.MustCompile(HourlyRatePattern),
}

// ValidUsername reports whether the username matches the allowed pattern.
func ValidUsername(username string) bool {
	return CompiledPatterns.Username.MatchString(username)
}

// ValidHourlyRate reports whether the rate is a non-negative decimal
// with at most two fraction digits.
func ValidHourlyRate(rate string) bool {
	return CompiledPatterns.HourlyRate.MatchString(rate)
}
