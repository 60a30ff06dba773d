// Package docs Report Hub API.
//
// Documentation of the Report Hub API.
//
//	 Schemes: https
//	 BasePath: /
//	 Version: 1.0.0
//	 Host: api.reporthub.app
//
//	 Consumes:
//	 - application/json
//
//	 Produces:
//	 - application/json
//
//	 Security:
//	 - bearer
//
//	SecurityDefinitions:
//	bearer:
//	  type: apiKey
//	  name: Authorization
//	  in: header
//
// swagger:meta
package docs

import (
	"github.com/reporthub/reporthub-api/api"
	"github.com/reporthub/reporthub-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route GET /metrics health metricsEndpointID
// Per-route request counts and latencies since the process started.
// responses:
//   200: metricsResponse

// swagger:response metricsResponse
type metricsResponseWrapper struct {
	// in:body
	Body api.MetricsSummary
}

// swagger:route GET /reports reports reportsList
// Lists every report, newest first.
// responses:
//   200: reportsResponse
//   500: errorResponse

// swagger:route GET /reports/pending reports pendingReports
// Lists the six newest Pending reports.
// responses:
//   200: reportsResponse
//   500: errorResponse

// swagger:route GET /dashboard/my-issues dashboard myIssues
// Lists the reports filed by the signed in citizen.
// security:
//   bearer:
// responses:
//   200: reportsResponse
//   401: unauthorizedResponse

// A list of reports
// swagger:response reportsResponse
type reportsResponseWrapper struct {
	// in:body
	Body []models.Report
}

// swagger:route GET /reports-paginated reports reportsPaginated
// Returns one page of reports filtered by search, status, priority and category.
// responses:
//   200: reportPageResponse
//   400: errorResponse

// swagger:response reportPageResponse
type reportPageResponseWrapper struct {
	// in:body
	Body models.ReportPage
}

// swagger:route GET /reports/{id} reports reportByID
// Gets a single report together with the staff member assigned to it.
// responses:
//   200: reportDetailResponse
//   400: errorResponse
//   404: errorResponse

// swagger:response reportDetailResponse
type reportDetailResponseWrapper struct {
	// in:body
	Body models.ReportDetail
}

// swagger:parameters reportByID upvoteReport assignReport
type reportIDParam struct {
	// in:path
	// required: true
	ID string `json:"id"`
}

// swagger:route POST /reports reports createReport
// Files a new report for the signed in citizen. Citizens on the free plan may have three reports.
// security:
//   bearer:
// responses:
//   201: writeResultResponse
//   403: errorResponse
//   404: errorResponse
//   429: rateLimitResponse

// swagger:parameters createReport
type createReportParam struct {
	// in:body
	Body models.Report
}

// swagger:route PATCH /reports/{id}/upvote reports upvoteReport
// Adds one vote from the signed in citizen.
// security:
//   bearer:
// responses:
//   200: upvoteResponse
//   400: errorResponse
//   403: errorResponse

// swagger:response upvoteResponse
type upvoteResponseWrapper struct {
	// in:body
	Body models.UpvoteResponse
}

// swagger:route PUT /reports/{id}/assign reports assignReport
// Assigns a staff member and resets the report to Pending.
// responses:
//   200: writeResultResponse
//   400: errorResponse

// swagger:parameters assignReport
type assignReportParam struct {
	// in:body
	Body models.AssignRequest
}

// swagger:response writeResultResponse
type writeResultResponseWrapper struct {
	// in:body
	Body models.WriteResult
}

// swagger:route POST /create-checkout-session payments createCheckoutSession
// Starts a hosted checkout for boosting a report.
// responses:
//   200: checkoutResponse
//   400: errorResponse

// swagger:parameters createCheckoutSession
type checkoutParam struct {
	// in:body
	Body models.CheckoutRequest
}

// swagger:response checkoutResponse
type checkoutResponseWrapper struct {
	// in:body
	Body models.CheckoutResponse
}

// swagger:route POST /upload-signature uploads uploadSignature
// Signs a direct photo upload.
// security:
//   bearer:
// responses:
//   200: uploadSignatureResponse

// swagger:response uploadSignatureResponse
type uploadSignatureResponseWrapper struct {
	// in:body
	Body models.UploadSignatureResponse
}

// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}

// swagger:response unauthorizedResponse
type unauthorizedResponseWrapper struct {
	// in:body
	Body models.UnauthorizedResponse
}

// swagger:response rateLimitResponse
type rateLimitResponseWrapper struct {
	// in:body
	Body models.RateLimitResponse
}
