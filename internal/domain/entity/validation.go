package entity

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// maxURLLength bounds URLs accepted for page analysis.
const maxURLLength = 2048

// ValidateURL checks that rawURL is an absolute http(s) URL with a host.
// Network checks (private addresses) belong to the fetcher, which resolves
// the host at request time.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "url is required"}
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "url cannot be parsed"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "url must use http or https scheme"}
	}
	if u.Hostname() == "" {
		return &ValidationError{Field: "url", Message: "url must have a host"}
	}
	return nil
}

// ValidateText rejects blank text and text longer than maxRunes characters.
// maxRunes <= 0 disables the length check.
func ValidateText(field, text string, maxRunes int) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: field, Message: "text is required"}
	}
	if maxRunes > 0 && utf8.RuneCountInString(text) > maxRunes {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("text is too long (max %d characters)", maxRunes),
		}
	}
	return nil
}
