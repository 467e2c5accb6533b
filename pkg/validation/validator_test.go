package validation

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type signup struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func bind(t *testing.T, body string) map[string]string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Init()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var req signup
	return ToDetails(c.ShouldBindJSON(&req))
}

func TestToDetails(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
		want  string
	}{
		{"missing name", `{"email":"a@b.co","password":"secret1"}`, "name", "is required"},
		{"bad email", `{"name":"A","email":"nope","password":"secret1"}`, "email", "must be a valid email"},
		{"short password", `{"name":"A","email":"a@b.co","password":"123"}`, "password", "must be at least 6 characters long"},
		{"unknown field", `{"name":"A","email":"a@b.co","password":"secret1","role":"admin"}`, "role", "is not allowed"},
		{"syntax", `{"name":`, "payload", "invalid json"},
		{"empty body", ``, "payload", "invalid json"},
		{"wrong type", `{"name":5,"email":"a@b.co","password":"secret1"}`, "name", "must be of type string"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := bind(t, tc.body)
			if got[tc.field] != tc.want {
				t.Fatalf("want %s=%q, got %v", tc.field, tc.want, got)
			}
		})
	}
}

func TestToDetailsValid(t *testing.T) {
	if got := bind(t, `{"name":"A","email":"a@b.co","password":"secret1"}`); got != nil {
		t.Fatalf("valid payload produced details: %v", got)
	}
}

func TestDateErrorDetails(t *testing.T) {
	got := ToDetails(&DateError{Value: "31/12/2025"})
	if got["date"] == "" {
		t.Fatalf("date error not rendered: %v", got)
	}
}
