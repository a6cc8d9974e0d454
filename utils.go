package softserve

import (
	"fmt"
	"mime"
	"path/filepath"
	"unicode/utf8"
)

// TrimRequestPath validates a request path and strips its leading slash.
// It returns ErrInvalidInput when the path:
//   - is empty
//   - does not start with "/"
//   - is not valid UTF-8
//   - contains null bytes, control characters (< 0x20) or DEL (0x7f)
//
// Dot segments are kept. Containment is decided on the canonical path.
func TrimRequestPath(p string) (string, error) {
	if p == "" || p[0] != '/' {
		return "", fmt.Errorf("%w: path must start with /", ErrInvalidInput)
	}

	if !utf8.ValidString(p) {
		return "", fmt.Errorf("%w: path is not valid UTF-8", ErrInvalidInput)
	}

	for _, r := range p {
		if r < 0x20 || r == 0x7f {
			return "", fmt.Errorf("%w: path contains control character %#x", ErrInvalidInput, r)
		}
	}

	return p[1:], nil
}

// ContentType guesses a MIME type from the extension of name.
// Parameters such as charset are dropped; unknown extensions map to text/plain.
func ContentType(name string) string {
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		return "text/plain"
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "text/plain"
	}

	return mediaType
}
