package gate

import (
	"net/url"
	"strconv"
)

// Route builders own all percent-encoding of caller-controlled path
// segments, so delimiter characters in arguments can never alter the
// intended route.

const (
	defaultSessionLimit = 20
	maxSessionLimit     = 100
	maxUsageDays        = 365
)

// SessionsPath builds the session listing route. A non-positive limit takes
// the default; out-of-range values are clamped.
func SessionsPath(limit int, status string) string {
	if limit <= 0 {
		limit = defaultSessionLimit
	}
	if limit > maxSessionLimit {
		limit = maxSessionLimit
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if status != "" {
		q.Set("status", status)
	}
	return "/api/sessions?" + q.Encode()
}

// PlaybooksPath lists the available workflow templates.
func PlaybooksPath() string { return "/api/playbooks" }

// PlaybookRunPath embeds the playbook slug as a single escaped path segment.
func PlaybookRunPath(slug string) string {
	return "/api/playbooks/" + url.PathEscape(slug) + "/run"
}

// UsagePath builds the usage statistics route; days is optional and clamped
// to one year.
func UsagePath(days int) string {
	if days <= 0 {
		return "/api/usage"
	}
	if days > maxUsageDays {
		days = maxUsageDays
	}
	return "/api/usage?days=" + strconv.Itoa(days)
}
