package auth

import "strings"

// MaskEmail truncates the local part of an address for log output so raw
// emails never reach the logs.
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	local := email[:at]
	if len(local) <= 2 {
		return "***" + email[at:]
	}
	return local[:2] + "***" + email[at:]
}
