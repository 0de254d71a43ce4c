package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestDiagReportsConfiguredKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_USER", "curricula")
	t.Setenv("POSTGRES_PASSWORD", "hunter2")
	t.Setenv("POSTGRES_PORT", "")
	t.Setenv("POSTGRES_NAME", "")
	t.Setenv("JWT_SECRET_KEY", "shh")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GCS_BUCKET_NAME", "")
	t.Setenv("SENDGRID_API_KEY", "")
	t.Setenv("CDN_DOMAIN", "")
	t.Setenv("LOG_MODE", "development")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/diag", nil)
	NewDiagHandler().Diag(c)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Database map[string]bool `json:"database"`
		JWT      bool            `json:"jwt_secret"`
		OpenAI   bool            `json:"openai"`
		LogMode  bool            `json:"log_mode"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	for _, key := range []string{"postgres_host", "postgres_user", "postgres_password"} {
		if !body.Database[key] {
			t.Errorf("database.%s = false, want true", key)
		}
	}
	for _, key := range []string{"postgres_port", "postgres_name"} {
		if body.Database[key] {
			t.Errorf("database.%s = true, want false", key)
		}
	}
	if !body.JWT {
		t.Error("jwt_secret = false, want true")
	}
	if body.OpenAI {
		t.Error("openai = true, want false")
	}
	if !body.LogMode {
		t.Error("log_mode = false, want true")
	}
}
