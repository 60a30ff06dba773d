package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reporthub/reporthub-api/api"
	"github.com/reporthub/reporthub-api/models"
)

type fakeCounter struct {
	counts  map[string]int64
	ttls    map[string]time.Duration
	incrErr error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCounter) Incr(_ context.Context, key string) (int64, error) {
	if f.incrErr != nil {
		return 0, f.incrErr
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeCounter) Expire(_ context.Context, key string, ttl time.Duration) error {
	f.ttls[key] = ttl
	return nil
}

func (f *fakeCounter) TTL(_ context.Context, key string) (time.Duration, error) {
	return f.ttls[key], nil
}

func limitedRequest(email string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/reports", nil)
	if email != "" {
		req = req.WithContext(api.WithEmail(req.Context(), email))
	}
	return req
}

func TestReportRateLimiter(t *testing.T) {
	counter := newFakeCounter()
	l := api.NewReportRateLimiter(counter, 2)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, limitedRequest("ada@example.com"))
		assert.Equal(t, http.StatusCreated, rr.Code)
	}
	assert.Equal(t, 24*time.Hour, counter.ttls["report-limit:ada@example.com"])

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, limitedRequest("ada@example.com"))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	var body models.RateLimitResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "rate limit exceeded", body.Error)
	assert.Equal(t, (24 * time.Hour).Seconds(), body.RetryAfter)

	// other citizens have their own budget
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, limitedRequest("bob@example.com"))
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestReportRateLimiter_Errors(t *testing.T) {
	counter := newFakeCounter()
	h := api.NewReportRateLimiter(counter, 2).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, limitedRequest(""))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	counter.incrErr = errors.New("mocked-error")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, limitedRequest("ada@example.com"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "failed to increment report count", Error: "mocked-error"}}
	b, _ := json.Marshal(expected)
	assert.Equal(t, string(b), rr.Body.String())
}
