package fetcher

import "errors"

// Errors returned by ReadabilityFetcher. Callers map them to client errors
// with errors.Is.
var (
	// ErrInvalidURL indicates a malformed URL or an unsupported scheme.
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP indicates the host resolves to a private, loopback or
	// link-local address.
	ErrPrivateIP = errors.New("private IP access denied")

	// ErrTooManyRedirects indicates the redirect limit was exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the page exceeds MaxBodySize.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout indicates the page did not load within Timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrNoReadableText indicates no article text could be extracted.
	ErrNoReadableText = errors.New("no readable text found")
)
