package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/reporthub/reporthub-api/api"
	"github.com/reporthub/reporthub-api/config"
	"github.com/reporthub/reporthub-api/lifecycle"
	"github.com/reporthub/reporthub-api/models"
	"github.com/reporthub/reporthub-api/notify"
)

// notifyTimeout bounds the assignment email so a slow mail API cannot stall the response
const notifyTimeout = 5 * time.Second

// Report exported for testing purposes
type Report struct {
	Engine   *lifecycle.Engine
	Notifier notify.Notifier
}

// ReportsHandler returns every report, newest first
func (re Report) ReportsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reports, err := re.Engine.List(ctx)
	if err != nil {
		lifecycleError("failed to get reports", w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, reports)
}

// CreateReportHandler files a new report for the signed in citizen
func (re Report) CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	email, _ := api.EmailFromContext(r.Context())

	var report models.Report
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := re.Engine.Create(ctx, email, report)
	if err != nil {
		lifecycleError("failed to create report", w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, res)
}

// PendingReportsHandler returns the latest Pending reports
func (re Report) PendingReportsHandler(w http.ResponseWriter, r *http.Request) {
	re.latest(w, r, models.StatusPending, lifecycle.DefaultLatestLimit)
}

// LatestReportsHandler returns the latest reports, optionally of one status
func (re Report) LatestReportsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		config.ErrorStatus("invalid limit", http.StatusBadRequest, w, err)
		return
	}
	re.latest(w, r, r.URL.Query().Get("status"), limit)
}

func (re Report) latest(w http.ResponseWriter, r *http.Request, status string, limit int) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reports, err := re.Engine.Latest(ctx, status, limit)
	if err != nil {
		lifecycleError("failed to get latest reports", w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, reports)
}

// PaginatedReportsHandler returns one filtered page of reports
func (re Report) PaginatedReportsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		config.ErrorStatus("invalid page", http.StatusBadRequest, w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		config.ErrorStatus("invalid limit", http.StatusBadRequest, w, err)
		return
	}
	q := r.URL.Query()

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := re.Engine.Paginate(ctx, lifecycle.Query{
		Page:     page,
		Limit:    limit,
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Category: q.Get("category"),
	})
	if err != nil {
		lifecycleError("failed to get paginated reports", w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, res)
}

// ReportByIDHandler returns a report with its assigned staff record
func (re Report) ReportByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	detail, err := re.Engine.Get(ctx, id)
	if err != nil {
		lifecycleError("failed to get report by ID", w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, detail)
}

// UpvoteReportHandler adds the caller's vote to a report
func (re Report) UpvoteReportHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	email, _ := api.EmailFromContext(r.Context())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := re.Engine.Upvote(ctx, id, email)
	if err != nil {
		lifecycleError("failed to upvote report", w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, models.UpvoteResponse{Message: "Upvote successful", Result: res})
}

// UpdateReportHandler lets the reporter edit a Pending report
func (re Report) UpdateReportHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	email, _ := api.EmailFromContext(r.Context())

	var changes models.ReportEdit
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := re.Engine.Edit(ctx, id, email, changes)
	if err != nil {
		lifecycleError("failed to update report", w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, res)
}

// DeleteReportHandler lets the reporter delete their report
func (re Report) DeleteReportHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	email, _ := api.EmailFromContext(r.Context())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := re.Engine.Delete(ctx, id, email)
	if err != nil {
		lifecycleError("failed to delete report", w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, res)
}

// AssignReportHandler assigns a staff member and emails them
func (re Report) AssignReportHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body models.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	staff := models.AssignedStaff{Email: body.StaffEmail, Name: body.StaffName}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := re.Engine.Assign(ctx, id, staff)
	if err != nil {
		lifecycleError("failed to assign report", w, err)
		return
	}
	if res.MatchedCount > 0 && re.Notifier != nil {
		re.notifyAssigned(r.Context(), id, staff)
	}
	api.WriteJSON(w, http.StatusOK, res)
}

func (re Report) notifyAssigned(parent context.Context, id string, staff models.AssignedStaff) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), notifyTimeout)
	defer cancel()

	if err := re.Notifier.Assigned(ctx, notify.Assignment{ReportID: id, Staff: staff}); err != nil {
		zap.S().Warnw("failed to notify assigned staff", "report", id, "staff", staff.Email, "error", err)
	}
}

// RejectReportHandler marks a report Rejected
func (re Report) RejectReportHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := re.Engine.Reject(ctx, id)
	if err != nil {
		lifecycleError("failed to reject report", w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, res)
}

// UpdateReportStatusHandler sets any status on a report
func (re Report) UpdateReportStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body models.StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := re.Engine.SetStatus(ctx, id, body.Status)
	if err != nil {
		lifecycleError("failed to update report status", w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, res)
}

// MyIssuesHandler returns the caller's own reports
func (re Report) MyIssuesHandler(w http.ResponseWriter, r *http.Request) {
	email, _ := api.EmailFromContext(r.Context())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reports, err := re.Engine.MyIssues(ctx, email)
	if err != nil {
		lifecycleError("failed to get my issues", w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, reports)
}

// AssignedIssuesHandler returns the reports assigned to the calling staff member
func (re Report) AssignedIssuesHandler(w http.ResponseWriter, r *http.Request) {
	email, _ := api.EmailFromContext(r.Context())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reports, err := re.Engine.AssignedTo(ctx, email)
	if err != nil {
		lifecycleError("failed to get assigned issues", w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, reports)
}

// queryInt reads an optional integer query parameter, zero when absent
func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
