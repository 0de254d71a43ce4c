package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "rate_limited",
			err:  &httpError{StatusCode: 429, Body: `{"error":{"message":"Rate limit reached"}}`},
			want: "too many requests",
		},
		{
			name: "quota",
			err:  errors.New("openai http 429: insufficient_quota"),
			want: "quota",
		},
		{
			name: "bad_key",
			err:  errors.New("openai http 401: Incorrect API key provided"),
			want: "API key",
		},
		{
			name: "content_policy",
			err:  errors.New("openai http 400: rejected by the safety system"),
			want: "content policy",
		},
		{
			name: "timeout",
			err:  errors.New("Post \"/v1/chat/completions\": context deadline exceeded"),
			want: "timed out",
		},
		{
			name: "generic",
			err:  errors.New("connection reset by peer"),
			want: "try again",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyError(tc.err)
			if !strings.Contains(strings.ToLower(got), strings.ToLower(tc.want)) {
				t.Fatalf("ClassifyError(%v)=%q, want it to mention %q", tc.err, got, tc.want)
			}
		})
	}

	if got := ClassifyError(nil); got != "" {
		t.Fatalf("ClassifyError(nil)=%q, want empty", got)
	}
}

func TestIsRetryableErr(t *testing.T) {
	if isRetryableErr(&httpError{StatusCode: 400}) {
		t.Fatal("400 should not be retryable")
	}
	if !isRetryableErr(&httpError{StatusCode: 429}) {
		t.Fatal("429 should be retryable")
	}
	if !isRetryableErr(&httpError{StatusCode: 503}) {
		t.Fatal("503 should be retryable")
	}
	if isRetryableErr(nil) {
		t.Fatal("nil should not be retryable")
	}
	if isRetryableErr(context.Canceled) {
		t.Fatal("caller cancellation should not be retryable")
	}
	if isRetryableErr(fmt.Errorf("post failed: %w", context.Canceled)) {
		t.Fatal("wrapped caller cancellation should not be retryable")
	}
}
