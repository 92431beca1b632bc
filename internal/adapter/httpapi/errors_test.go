package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractErrorMessage(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		statusCode int
		status     string
		expected   string
	}{
		{
			name:       "json message wins",
			body:       `{"message":"user not found","error":"not_found"}`,
			statusCode: http.StatusNotFound,
			status:     "404 Not Found",
			expected:   "user not found",
		},
		{
			name:       "json error used when message missing",
			body:       `{"error":"invalid_id"}`,
			statusCode: http.StatusBadRequest,
			status:     "400 Bad Request",
			expected:   "invalid_id",
		},
		{
			name:       "json without known fields falls back to raw text",
			body:       `{"detail":"nope"}`,
			statusCode: http.StatusBadRequest,
			status:     "400 Bad Request",
			expected:   `{"detail":"nope"}`,
		},
		{
			name:       "blank message falls through",
			body:       `{"message":"   "}`,
			statusCode: http.StatusConflict,
			status:     "409 Conflict",
			expected:   `{"message":"   "}`,
		},
		{
			name:       "malformed json falls back to raw text",
			body:       `{"message": oops`,
			statusCode: http.StatusInternalServerError,
			status:     "500 Internal Server Error",
			expected:   `{"message": oops`,
		},
		{
			name:       "plain text body",
			body:       "user not found\n",
			statusCode: http.StatusNotFound,
			status:     "404 Not Found",
			expected:   "user not found",
		},
		{
			name:       "empty body uses status text",
			body:       "",
			statusCode: http.StatusServiceUnavailable,
			status:     "503 Service Unavailable",
			expected:   "Service Unavailable",
		},
		{
			name:       "whitespace body uses status text",
			body:       " \n\t",
			statusCode: http.StatusBadGateway,
			status:     "502 Bad Gateway",
			expected:   "Bad Gateway",
		},
		{
			name:       "custom reason phrase kept",
			body:       "",
			statusCode: http.StatusTeapot,
			status:     "418 Short And Stout",
			expected:   "Short And Stout",
		},
		{
			name:       "missing status line uses standard text",
			body:       "",
			statusCode: http.StatusNotFound,
			status:     "",
			expected:   "Not Found",
		},
		{
			name:       "unknown code without text",
			body:       "",
			statusCode: 599,
			status:     "599",
			expected:   "HTTP 599",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractErrorMessage([]byte(tt.body), tt.statusCode, tt.status))
		})
	}
}
