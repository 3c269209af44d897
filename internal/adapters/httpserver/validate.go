package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// phoneRe accepts more carrier prefixes than FormatPhoneNumber rewrites;
// validated non-010 numbers are stored as received.
var phoneRe = regexp.MustCompile(`^01[016789]-?[0-9]{3,4}-?[0-9]{4}$`)

// validateCustomer checks the request body ahead of create and update
// handlers. On POST every field is required; on PUT fields are optional but
// still format-checked when present. All violations are collected into a
// single 400 response.
func (s *Server) validateCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(buf))

		var body struct {
			Name        *string `json:"name"`
			Email       *string `json:"email"`
			PhoneNumber *string `json:"phone_number"`
		}
		if err := json.Unmarshal(buf, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		isCreate := r.Method == http.MethodPost
		var violations []string

		if isCreate && body.Name == nil {
			violations = append(violations, "name is required")
		} else if body.Name != nil && utf8.RuneCountInString(strings.TrimSpace(*body.Name)) < 2 {
			violations = append(violations, "name must be at least 2 characters")
		}

		if isCreate && body.Email == nil {
			violations = append(violations, "email is required")
		} else if body.Email != nil && !emailRe.MatchString(*body.Email) {
			violations = append(violations, "invalid email format")
		}

		if isCreate && body.PhoneNumber == nil {
			violations = append(violations, "phone number is required")
		} else if body.PhoneNumber != nil && !phoneRe.MatchString(*body.PhoneNumber) {
			violations = append(violations, "invalid phone number format (e.g. 010-1234-5678)")
		}

		if len(violations) > 0 {
			writeError(w, http.StatusBadRequest, strings.Join(violations, "; "))
			return
		}
		next.ServeHTTP(w, r)
	})
}
