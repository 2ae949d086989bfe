package common

// WipeByteArray zeroes b. Used to drop passwords read from the terminal
// once they have been copied into a request. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// BearerToken formats token as an Authorization header value.
func BearerToken(token string) string {
	return BearerPrefix + token
}
