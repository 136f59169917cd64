package scraper

import "fmt"

// UpstreamError covers transient marketplace failures: network errors,
// non-200 statuses, request timeouts. Callers may retry; nothing here
// retries internally.
type UpstreamError struct {
	URL    string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("upstream %s: %v", e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ExtractionError means the rendered page did not yield the expected
// DOM structure. Timeout distinguishes "waited and gave up" from
// "loaded, but the element is absent".
type ExtractionError struct {
	URL      string
	Selector string
	Timeout  bool
}

func (e *ExtractionError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("extraction timeout waiting for %q at %s", e.Selector, e.URL)
	}
	return fmt.Sprintf("extraction failed: %q not found at %s", e.Selector, e.URL)
}
