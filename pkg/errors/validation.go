package errors

import (
	"net"
	"strings"
	"unicode"
)

// ValidateOutputPath validates a path the converter is about to write to.
// It rejects paths that could not have come from a well-formed command line.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters
//   - No null bytes
//   - Maximum length of 500 characters
//
// "-" passes: it is the conventional spelling for stdout.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	return nil
}

// ValidateListenAddr validates a host:port listen address for the preview
// server. The host part may be empty (listen on all interfaces) but the
// port must be present and numeric.
func ValidateListenAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidInput, "listen address cannot be empty")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid listen address: %q", addr)
	}

	if port == "" {
		return New(ErrCodeInvalidInput, "listen address %q has no port", addr)
	}
	for _, r := range port {
		if r < '0' || r > '9' {
			return New(ErrCodeInvalidInput, "listen address %q has a non-numeric port", addr)
		}
	}

	// Reject whitespace smuggled into the host part.
	if strings.ContainsAny(host, " \t") {
		return New(ErrCodeInvalidInput, "listen address %q contains whitespace", addr)
	}

	return nil
}
