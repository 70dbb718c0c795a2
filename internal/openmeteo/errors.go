package openmeteo

import (
	"errors"
	"fmt"
)

// Reason classifies why a fetch failed
type Reason string

const (
	ReasonNetwork     Reason = "network"
	ReasonStatus      Reason = "status"
	ReasonDecode      Reason = "decode"
	ReasonMissingHour Reason = "missing_hour"
	ReasonRateLimited Reason = "rate_limited"
)

// FetchError is returned for every failed upstream call
type FetchError struct {
	Reason   Reason
	Endpoint string
	Err      error
}

func (e *FetchError) Error() string {
	if e.Endpoint == "" {
		return fmt.Sprintf("marine data unavailable (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("marine data unavailable (%s, %s): %v", e.Reason, e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ReasonOf extracts the failure reason from err, or "" if err is not a FetchError
func ReasonOf(err error) Reason {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return ""
}
