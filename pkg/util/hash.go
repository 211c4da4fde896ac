package util

import (
	"crypto/md5"
	"encoding/hex"
)

// HashString returns the MD5 hex digest of input. Used as a cheap content
// fingerprint (ETag) for rendered summaries.
func HashString(input string) string {
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}

// QuotedHash returns HashString(input) wrapped in double quotes, the form
// HTTP expects for strong entity tags.
func QuotedHash(input string) string {
	return `"` + HashString(input) + `"`
}
