package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runValidation(t *testing.T, method, body string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	s := &Server{}
	passed := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		passed = true
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(method, "/api/customers", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.validateCustomer(next).ServeHTTP(w, req)
	return w, passed
}

func TestValidateCustomer(t *testing.T) {
	cases := []struct {
		name   string
		method string
		body   string
		pass   bool
		want   string
	}{
		{
			name:   "valid create",
			method: http.MethodPost,
			body:   `{"name":"Ann","email":"x@x.com","phone_number":"01012345678"}`,
			pass:   true,
		},
		{
			name:   "valid create with hyphens",
			method: http.MethodPost,
			body:   `{"name":"Ann","email":"x@x.com","phone_number":"010-1234-5678"}`,
			pass:   true,
		},
		{
			name:   "non-010 prefix accepted",
			method: http.MethodPost,
			body:   `{"name":"Ann","email":"x@x.com","phone_number":"016-123-4567"}`,
			pass:   true,
		},
		{
			name:   "name too short",
			method: http.MethodPost,
			body:   `{"name":"a","email":"x@x.com","phone_number":"010-1234-5678"}`,
			want:   "name must be at least 2 characters",
		},
		{
			name:   "name only whitespace",
			method: http.MethodPost,
			body:   `{"name":"  ","email":"x@x.com","phone_number":"010-1234-5678"}`,
			want:   "name must be at least 2 characters",
		},
		{
			name:   "bad email",
			method: http.MethodPost,
			body:   `{"name":"Ann","email":"bad","phone_number":"010-1234-5678"}`,
			want:   "invalid email format",
		},
		{
			name:   "bad phone",
			method: http.MethodPost,
			body:   `{"name":"Ann","email":"x@x.com","phone_number":"02-123-4567"}`,
			want:   "invalid phone number format",
		},
		{
			name:   "missing everything on create",
			method: http.MethodPost,
			body:   `{}`,
			want:   "name is required; email is required; phone number is required",
		},
		{
			name:   "empty body on update passes",
			method: http.MethodPut,
			body:   `{}`,
			pass:   true,
		},
		{
			name:   "present fields still checked on update",
			method: http.MethodPut,
			body:   `{"email":"bad"}`,
			want:   "invalid email format",
		},
		{
			name:   "malformed json",
			method: http.MethodPost,
			body:   `{"name":`,
			want:   "invalid request body",
		},
		{
			name:   "wrong field type",
			method: http.MethodPost,
			body:   `{"name":7,"email":"x@x.com","phone_number":"010-1234-5678"}`,
			want:   "invalid request body",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, passed := runValidation(t, tc.method, tc.body)
			if tc.pass {
				assert.True(t, passed, "request should reach the handler")
				return
			}
			require.False(t, passed, "request should be rejected")
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeBody(t, w)["error"], tc.want)
		})
	}
}

func TestValidationRestoresBody(t *testing.T) {
	s := &Server{}
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 1024)
		n, _ := r.Body.Read(buf)
		seen = string(buf[:n])
		w.WriteHeader(http.StatusOK)
	})

	body := `{"name":"Ann","email":"x@x.com","phone_number":"01012345678"}`
	req := httptest.NewRequest(http.MethodPost, "/api/customers", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.validateCustomer(next).ServeHTTP(w, req)

	assert.Equal(t, body, seen)
}
