package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestExtractToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		header string
		query  string
		want   string
	}{
		{"bearer header", "Bearer abc.def.ghi", "", "abc.def.ghi"},
		{"lowercase scheme", "bearer abc.def.ghi", "", "abc.def.ghi"},
		{"query fallback", "", "token=qrs.tuv.wxy", "qrs.tuv.wxy"},
		{"header wins over query", "Bearer from-header", "token=from-query", "from-header"},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", ""},
		{"empty", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			url := "/api/profile"
			if tc.query != "" {
				url += "?" + tc.query
			}
			c.Request = httptest.NewRequest("GET", url, nil)
			if tc.header != "" {
				c.Request.Header.Set("Authorization", tc.header)
			}
			if got := extractToken(c); got != tc.want {
				t.Errorf("extractToken() = %q, want %q", got, tc.want)
			}
		})
	}
}
