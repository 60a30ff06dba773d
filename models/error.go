package models

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string
	Error   string
}

// UnauthorizedResponse is written by the auth middleware
type UnauthorizedResponse struct {
	Error string `json:"error"`
}

// RateLimitResponse is written when a citizen files too many reports in a day
type RateLimitResponse struct {
	Error      string  `json:"error"`
	RetryAfter float64 `json:"retryAfter"`
}
