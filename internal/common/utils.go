package common

import "strings"

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// It is used to drop passwords from memory once they were sent.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// BearerValue formats token as an Authorization header value.
func BearerValue(token string) string {
	return BearerScheme + " " + token
}

// ParseBearer extracts the token from an Authorization header value.
// It returns false when the value does not use the bearer scheme.
func ParseBearer(v string) (string, bool) {
	prefix := BearerScheme + " "
	if !strings.HasPrefix(v, prefix) {
		return "", false
	}
	token := strings.TrimSpace(v[len(prefix):])
	return token, token != ""
}
