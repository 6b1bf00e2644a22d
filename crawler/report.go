package crawler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lukemcguire/linkaudit/result"
)

// Report is the crawler's output: every page visited, in crawl order.
type Report []Page

// Page is a crawled page and the links found on it.
type Page struct {
	URL   string `json:"url"`
	Links []Link `json:"links"`
}

// Link is a link found on a page. An empty Error means the link is healthy.
type Link struct {
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

// Code returns the first token of the link's error text.
func (l Link) Code() string {
	return result.ErrorCode(l.Error)
}

// errEmptyOutput is returned when the crawler printed nothing.
var errEmptyOutput = errors.New("crawler produced no output")

// Decode parses the crawler's JSON output into a Report.
func Decode(data []byte) (Report, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyOutput
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode crawler output: %w", err)
	}
	return report, nil
}
