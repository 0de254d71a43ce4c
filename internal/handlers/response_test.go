package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sageleaf/curricula-backend/internal/services"
)

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unauthenticated", services.ErrUnauthenticated, http.StatusUnauthorized},
		{"invalid input", fmt.Errorf("%w: missing field", services.ErrInvalidInput), http.StatusBadRequest},
		{"not found", fmt.Errorf("curriculum abc: %w", services.ErrNotFound), http.StatusNotFound},
		{"duplicate", services.ErrDuplicate, http.StatusConflict},
		{"illegal transition", services.ErrIllegalTransition, http.StatusConflict},
		{"generation failure", fmt.Errorf("%w: rate limited", services.ErrGeneration), http.StatusBadGateway},
		{"unclassified", errors.New("db connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			RespondServiceError(c, "test_failed", tc.err)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}

func TestRespondErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("bad json"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	body := w.Body.String()
	for _, want := range []string{`"error"`, `"bad json"`, `"invalid_body"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body %q missing %q", body, want)
		}
	}
}
