// Package urlutil provides URL checks shared by the command line and the
// link verifier.
package urlutil

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// IsHTTPScheme returns true if the URL has an http or https scheme.
// Returns false for empty strings, non-HTTP schemes, or unparseable URLs.
func IsHTTPScheme(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(parsed.Scheme)
	return scheme == "http" || scheme == "https"
}

// ValidateTarget checks that rawURL is an absolute http(s) URL with a host.
func ValidateTarget(rawURL string) error {
	if rawURL == "" {
		return errors.New("URL is required")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL %q: %w", rawURL, err)
	}
	if !IsHTTPScheme(rawURL) {
		return fmt.Errorf("URL %q must start with http:// or https://", rawURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL %q has no host", rawURL)
	}
	return nil
}
