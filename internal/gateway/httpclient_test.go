package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/careerbridge/assessment/internal/assessment"
	"github.com/careerbridge/assessment/internal/gateway"
)

func TestClient_SubmitSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tests/interest/submit" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Fatalf("authorization = %q", got)
		}
		var body struct {
			Responses        map[string]assessment.Answer `json:"responses"`
			TimeSpentMinutes int                          `json:"time_spent_minutes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.TimeSpentMinutes != 12 || len(body.Responses) != 1 {
			t.Fatalf("body = %+v", body)
		}
		_ = json.NewEncoder(w).Encode(gateway.SubmittedResult{
			ID: "res-9", Section: assessment.SectionInterest, Status: "submitted",
		})
	}))
	defer srv.Close()

	c := gateway.New(gateway.Config{BaseURL: srv.URL, Token: "tok-1"})
	res, err := c.SubmitResults(context.Background(), assessment.SectionInterest,
		map[string]assessment.Answer{"ri-01": assessment.BoolAnswer(true)}, 12)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.ID != "res-9" {
		t.Fatalf("result = %+v", res)
	}
}

func TestClient_Classification(t *testing.T) {
	cases := []struct {
		status int
		body   string
		kind   gateway.Kind
		retry  bool
	}{
		{http.StatusUnauthorized, `{"error":"token expired"}`, gateway.KindAuth, false},
		{http.StatusForbidden, `{"error":"forbidden"}`, gateway.KindAuth, false},
		{http.StatusUnprocessableEntity, `{"error":"incomplete responses","field_errors":[{"question_id":"ri-05","message":"Question 5 not answered"}]}`, gateway.KindValidation, false},
		{http.StatusInternalServerError, `{"error":"db down"}`, gateway.KindServer, true},
		{http.StatusBadGateway, ``, gateway.KindServer, true},
	}
	for _, c := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(c.status)
			_, _ = w.Write([]byte(c.body))
		}))
		cl := gateway.New(gateway.Config{BaseURL: srv.URL})
		err := cl.SaveProgress(context.Background(), assessment.SectionInterest, gateway.Snapshot{})
		srv.Close()
		var ge *gateway.Error
		if !errors.As(err, &ge) {
			t.Fatalf("status %d: err = %v", c.status, err)
		}
		if ge.Kind != c.kind {
			t.Fatalf("status %d: kind = %s, want %s", c.status, ge.Kind, c.kind)
		}
		if ge.Retryable() != c.retry {
			t.Fatalf("status %d: retryable = %v", c.status, ge.Retryable())
		}
		if c.kind == gateway.KindValidation {
			if len(ge.FieldErrors) != 1 || ge.FieldErrors[0].QuestionID != "ri-05" {
				t.Fatalf("field errors = %+v", ge.FieldErrors)
			}
		}
	}
}

func TestClient_TransportFailureIsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := gateway.New(gateway.Config{BaseURL: srv.URL, Timeout: time.Second})
	_, err := c.GetOrCreateTest(context.Background())
	var ge *gateway.Error
	if !errors.As(err, &ge) || ge.Kind != gateway.KindNetwork {
		t.Fatalf("err = %v, want network", err)
	}
	if !ge.Retryable() {
		t.Fatal("network failures must be retryable")
	}
}

func TestClient_TimeoutClassifiesAsNetwork(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() { close(block); srv.Close() }()

	c := gateway.New(gateway.Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	err := c.SaveProgress(context.Background(), assessment.SectionInterest, gateway.Snapshot{})
	var ge *gateway.Error
	if !errors.As(err, &ge) || ge.Kind != gateway.KindNetwork {
		t.Fatalf("err = %v, want network timeout", err)
	}
}
