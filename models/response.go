package models

// HealthCheckResponse returns the health check response duh
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// WriteResult reports the outcome of a single insert, update or delete.
// A zero MatchedCount or DeletedCount is a valid, non-error outcome.
type WriteResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	InsertedID    interface{} `json:"insertedId,omitempty"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	DeletedCount  int64       `json:"deletedCount"`
}

// UpvoteResponse is returned after a successful upvote
type UpvoteResponse struct {
	Message string      `json:"message"`
	Result  WriteResult `json:"result"`
}

// AssignRequest is the body of an assign call
type AssignRequest struct {
	StaffEmail string `json:"staffEmail"`
	StaffName  string `json:"staffName"`
}

// StatusRequest is the body of a status update
type StatusRequest struct {
	Status string `json:"status"`
}

// CheckoutRequest is the body of a checkout session request. Charge is in major currency units.
type CheckoutRequest struct {
	Charge    float64 `json:"charge"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Email     string  `json:"email"`
	CitizenID string  `json:"citizenId"`
	IssueID   string  `json:"issueId,omitempty"`
}

// CheckoutResponse carries the hosted checkout URL
type CheckoutResponse struct {
	URL string `json:"url"`
}

// UploadSignatureResponse carries what a browser needs to upload a photo directly
type UploadSignatureResponse struct {
	Timestamp    string `json:"timestamp"`
	Signature    string `json:"signature"`
	APIKey       string `json:"apiKey"`
	CloudName    string `json:"cloudName"`
	UploadPreset string `json:"uploadPreset"`
}
