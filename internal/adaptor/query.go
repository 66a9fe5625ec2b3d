package adaptor

import "net/url"

// queryValue returns the first non-empty value among keys. Legacy clients send Spanish
// parameter names.
func queryValue(query url.Values, keys ...string) string {
	for _, key := range keys {
		if v := query.Get(key); v != "" {
			return v
		}
	}
	return ""
}
