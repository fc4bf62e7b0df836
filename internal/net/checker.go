// Package net talks to the grading service that OCRs a submitted drawing and
// returns feedback annotations for it.
package net

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"WorkBoard/internal/feedback"
)

// CheckPath is the grading endpoint relative to the service root.
const CheckPath = "/api/check-work-with-feedback"

const DefaultTimeout = 30 * time.Second

// CheckRequest is the body sent with a submitted drawing.
type CheckRequest struct {
	ImageData     string `json:"image_data"`
	Question      string `json:"question"`
	CorrectAnswer string `json:"correct_answer"`
	ProblemType   string `json:"problem_type,omitempty"`
}

// CheckResult is the grader's verdict. Feedback coordinates are in the
// export space of the submitted image.
type CheckResult struct {
	OverallCorrect  bool            `json:"overall_correct"`
	FeedbackItems   []feedback.Item `json:"feedback_items"`
	GeneralFeedback string          `json:"general_feedback"`
	Confidence      float64         `json:"confidence"`
	ErrorMessage    string          `json:"error_message,omitempty"`
	ExtractedWork   string          `json:"extracted_work"`
}

// Checker submits drawings for grading.
type Checker interface {
	Check(ctx context.Context, req CheckRequest) (*CheckResult, error)
	Close() error
}

// NewChecker picks a transport from the endpoint scheme: http(s) or ws(s).
func NewChecker(endpoint string, timeout time.Duration) (Checker, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse checker endpoint: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("checker endpoint %q has no host", endpoint)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return NewHTTPChecker(checkURL(u), timeout), nil
	case "ws", "wss":
		return NewWSChecker(checkURL(u), timeout), nil
	default:
		return nil, fmt.Errorf("unsupported checker scheme %q", u.Scheme)
	}
}

func checkURL(u *url.URL) string {
	c := *u
	if c.Path == "" || c.Path == "/" {
		c.Path = CheckPath
	}
	return c.String()
}

// verdict turns an in-band error message into an error.
func verdict(res *CheckResult) (*CheckResult, error) {
	if res.ErrorMessage != "" {
		return nil, fmt.Errorf("grader: %s", res.ErrorMessage)
	}
	return res, nil
}
