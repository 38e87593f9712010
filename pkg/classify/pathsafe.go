package classify

import (
	"net/url"
	"strings"
)

// maxDecodeRounds bounds how many layers of percent-encoding are peeled.
const maxDecodeRounds = 3

// IsPathSafe reports whether path is free of null bytes, backslashes and
// ".." segments after up to three rounds of percent-decoding. Paths that fail
// to decode are unsafe.
func IsPathSafe(path string) bool {
	current := path
	for range maxDecodeRounds + 1 {
		if !rawSafe(current) {
			return false
		}
		if !strings.Contains(current, "%") {
			return true
		}
		decoded, err := url.PathUnescape(current)
		if err != nil {
			return false
		}
		if decoded == current {
			return true
		}
		current = decoded
	}
	// still encoded after the allowed rounds
	return false
}

func rawSafe(p string) bool {
	if strings.ContainsRune(p, 0) || strings.Contains(p, "\\") {
		return false
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}
