package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sageleaf/curricula-backend/internal/logger"
)

func testClient(baseURL string, maxRetries int) *client {
	return &client{
		log:        &logger.Logger{SugaredLogger: zap.NewNop().Sugar()},
		baseURL:    baseURL,
		apiKey:     "test-key",
		model:      "test-model",
		httpClient: &http.Client{Timeout: 5 * time.Second},
		maxRetries: maxRetries,
	}
}

func TestDoStopsRetryingOnceContextExpires(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		// The caller gives up while the attempt is in flight; the loop must
		// return instead of sleeping out a backoff.
		cancel()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 4)
	start := time.Now()
	err := c.do(ctx, "POST", "/v1/chat/completions", nil, nil)
	elapsed := time.Since(start)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("do took %v, expected an immediate return", elapsed)
	}
}

func TestNewChatRequestTemperature(t *testing.T) {
	cases := []struct {
		name string
		opts *GenerateOptions
		want float64
	}{
		{"nil options uses default", nil, 0.7},
		{"unset temperature uses default", &GenerateOptions{MaxTokens: 100}, 0.7},
		{"zero temperature is preserved", &GenerateOptions{Temperature: Temp(0)}, 0},
		{"explicit temperature wins", &GenerateOptions{Temperature: Temp(1.2)}, 1.2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := newChatRequest("m", "sys", "usr", tc.opts)
			if req.Temperature == nil {
				t.Fatal("Temperature = nil, want a value")
			}
			if *req.Temperature != tc.want {
				t.Fatalf("Temperature = %v, want %v", *req.Temperature, tc.want)
			}
		})
	}

	raw, err := json.Marshal(newChatRequest("m", "sys", "usr", &GenerateOptions{Temperature: Temp(0)}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"temperature":0`) {
		t.Errorf("marshaled request %s missing temperature 0", raw)
	}
}
