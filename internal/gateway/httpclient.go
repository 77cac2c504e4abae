package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/careerbridge/assessment/internal/assessment"
)

// Client talks to the assessment backend over HTTP. Every call is
// bounded by the configured timeout; expiry classifies as a network
// failure like any other transport error.
type Client struct {
	base  string
	token string
	http  *http.Client
}

type Config struct {
	BaseURL string
	Token   string // bearer token from login
	Timeout time.Duration
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:  strings.TrimSuffix(cfg.BaseURL, "/"),
		token: cfg.Token,
		http:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetOrCreateTest(ctx context.Context) (TestOverview, error) {
	var out TestOverview
	if err := c.do(ctx, http.MethodGet, "/tests", nil, &out); err != nil {
		return TestOverview{}, err
	}
	return out, nil
}

func (c *Client) SaveProgress(ctx context.Context, section assessment.Section, snap Snapshot) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/tests/%s/progress", section), snap, nil)
}

func (c *Client) ValidateSection(ctx context.Context, section assessment.Section, responses map[string]assessment.Answer) (assessment.ValidationResult, error) {
	body := map[string]any{"responses": responses}
	var out assessment.ValidationResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tests/%s/validate", section), body, &out); err != nil {
		return assessment.ValidationResult{}, err
	}
	return out, nil
}

func (c *Client) SubmitResults(ctx context.Context, section assessment.Section, responses map[string]assessment.Answer, timeSpentMinutes int) (SubmittedResult, error) {
	body := map[string]any{
		"responses":          responses,
		"time_spent_minutes": timeSpentMinutes,
	}
	var out SubmittedResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tests/%s/submit", section), body, &out); err != nil {
		return SubmittedResult{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindValidation, Msg: err.Error()}
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return &Error{Kind: KindNetwork, Msg: err.Error()}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Msg: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		return classify(res)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &Error{Kind: KindServer, Status: res.StatusCode, Msg: "malformed response body"}
	}
	return nil
}

// classify maps an HTTP failure status onto the error taxonomy. The
// response body, when it is the backend's JSON error shape, supplies
// the message and any field-level errors.
func classify(res *http.Response) *Error {
	var payload struct {
		Error       string       `json:"error"`
		FieldErrors []FieldError `json:"field_errors"`
	}
	_ = json.NewDecoder(io.LimitReader(res.Body, 64<<10)).Decode(&payload)
	msg := payload.Error
	if msg == "" {
		msg = res.Status
	}

	e := &Error{Status: res.StatusCode, Msg: msg, FieldErrors: payload.FieldErrors}
	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		e.Kind = KindAuth
	case res.StatusCode == http.StatusUnprocessableEntity || res.StatusCode == http.StatusBadRequest:
		e.Kind = KindValidation
	case res.StatusCode >= 500:
		e.Kind = KindServer
	default:
		e.Kind = KindServer
	}
	return e
}
