package auth

import "strings"

// Allowlist is the set of email addresses permitted to log in.
type Allowlist []string

// ParseAllowlist splits a comma-separated configuration string into an
// allow-list. Entries are trimmed and lower-cased; empty entries are dropped,
// so an empty configuration rejects everyone.
func ParseAllowlist(configured string) Allowlist {
	var list Allowlist
	for _, entry := range strings.Split(configured, ",") {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry != "" {
			list = append(list, entry)
		}
	}
	return list
}

func (a Allowlist) IsAllowed(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, allowed := range a {
		if allowed == email {
			return true
		}
	}
	return false
}
