package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/longles/Reddit-Downloader/internal/utils/errs"
)

var (
	// Usernames become archive folder names, so the charset is restricted
	// to what reddit allows; no dots or separators can sneak into a path.
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

	extensionPattern = regexp.MustCompile(`\.([a-zA-Z0-9]+)(?:\?|$)`)
)

func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: empty username", errs.ErrInvalidInput)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: malformed username %q", errs.ErrInvalidInput, username)
	}

	return nil
}

func ValidateJobParams(limit, concurrency int) error {
	if limit < 0 {
		return fmt.Errorf("%w: limit must not be negative, got %d", errs.ErrInvalidInput, limit)
	}
	if concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", errs.ErrInvalidInput, concurrency)
	}

	return nil
}

// ExtensionFromURL extracts the lowercase file extension from a media URL.
// The extension may be followed by a query string, as in ".jpg?width=640".
func ExtensionFromURL(rawURL string) string {
	match := extensionPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return ""
	}

	return strings.ToLower(match[1])
}
