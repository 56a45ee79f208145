package api

import "regexp"

var (
	usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
	emailRegexp    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	hexColorRegexp = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

func validTaskStatus(s string) bool {
	return s == "pending" || s == "in_progress" || s == "completed"
}

func validTaskPriority(p string) bool {
	return p == "low" || p == "medium" || p == "high"
}
