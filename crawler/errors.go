package crawler

import (
	"errors"
	"fmt"
)

// ErrCrawlerNotFound is returned when the crawler executable cannot be located.
var ErrCrawlerNotFound = errors.New("crawler executable not found")

// SetupError reports that the crawler could not be started at all.
type SetupError struct {
	Binary string
	Err    error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("start crawler %s: %v", e.Binary, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// ParseError reports that every crawl attempt produced undecodable output.
type ParseError struct {
	Attempts int
	Err      error // Decode error of the last attempt
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable output after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
