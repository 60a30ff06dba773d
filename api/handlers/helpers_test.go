package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reporthub/reporthub-api/api"
	"github.com/reporthub/reporthub-api/databases/mocks"
	"github.com/reporthub/reporthub-api/lifecycle"
	"github.com/reporthub/reporthub-api/models"
	"github.com/reporthub/reporthub-api/notify"
)

var (
	fixedNow = time.Date(2024, 3, 14, 9, 26, 53, 0, time.UTC)
	fixedDT  = primitive.NewDateTimeFromTime(fixedNow)
)

type stores struct {
	reports  *mocks.ReportDatabase
	citizens *mocks.CitizenDatabase
	staff    *mocks.StaffDatabase
}

func newEngine() (*lifecycle.Engine, stores) {
	s := stores{
		reports:  &mocks.ReportDatabase{},
		citizens: &mocks.CitizenDatabase{},
		staff:    &mocks.StaffDatabase{},
	}
	e := lifecycle.New(s.reports, s.citizens, s.staff)
	e.Now = func() time.Time { return fixedNow }
	return e, s
}

// newRequest builds a request carrying vars and, when email is set, a verified caller
func newRequest(method, target, body string, vars map[string]string, email string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	if email != "" {
		req = req.WithContext(api.WithEmail(req.Context(), email))
	}
	return req
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.MessageError {
	t.Helper()
	var body models.ErrorMessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Response
}

func decodeResult(t *testing.T, rr *httptest.ResponseRecorder) models.WriteResult {
	t.Helper()
	var res models.WriteResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	return res
}

func insertResult(id interface{}) *mocks.InsertOneResultHelper {
	ir := &mocks.InsertOneResultHelper{}
	ir.On("Decode").Return(id)
	return ir
}

type recordingNotifier struct {
	mu       sync.Mutex
	assigned []notify.Assignment
	err      error
}

func (n *recordingNotifier) Assigned(_ context.Context, a notify.Assignment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.assigned = append(n.assigned, a)
	return n.err
}

func (n *recordingNotifier) Reminder(context.Context, models.AssignedStaff, []models.Report) error {
	return nil
}
