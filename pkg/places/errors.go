package places

import "fmt"

// DeniedError reports a REQUEST_DENIED status in an API response body
// (billing disabled, invalid key, API not enabled). It is fatal for the
// whole run, not just the current call: callers must stop issuing
// requests once one is seen.
type DeniedError struct {
	Op      string // "textsearch" or "details"
	Message string // error_message from the response body, may be empty
}

func (e *DeniedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("places: %s request denied", e.Op)
	}
	return fmt.Sprintf("places: %s request denied: %s", e.Op, e.Message)
}

// DetailError reports a terminal failure fetching one candidate's
// detail record. It is caught per-candidate by the enricher and never
// aborts a district.
type DetailError struct {
	PlaceID string
	Err     error
}

func (e *DetailError) Error() string {
	return fmt.Sprintf("places: details for %s: %v", e.PlaceID, e.Err)
}

func (e *DetailError) Unwrap() error {
	return e.Err
}
