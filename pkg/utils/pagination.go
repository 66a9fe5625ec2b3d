package utils

// ClampLimit returns def when limit is not positive and max when it exceeds max.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
