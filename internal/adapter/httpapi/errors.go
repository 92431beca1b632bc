package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// maxErrorBody bounds how much of an error response is read
const maxErrorBody = 64 << 10

// errorBody is the JSON error shape the users API may return
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ExtractErrorMessage derives the operator-facing message for a non-success
// response. Candidates are tried in order and the first non-empty one wins:
//
//  1. the "message" field of a JSON object body
//  2. the "error" field of a JSON object body
//  3. the raw body text, trimmed
//  4. the HTTP status text
//  5. "HTTP <code>"
func ExtractErrorMessage(body []byte, statusCode int, status string) string {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var eb errorBody
		if err := json.Unmarshal(trimmed, &eb); err == nil {
			if msg := strings.TrimSpace(eb.Message); msg != "" {
				return msg
			}
			if msg := strings.TrimSpace(eb.Error); msg != "" {
				return msg
			}
		}
	}

	if len(trimmed) > 0 {
		return string(trimmed)
	}

	if text := statusText(statusCode, status); text != "" {
		return text
	}

	return fmt.Sprintf("HTTP %d", statusCode)
}

// statusText returns the reason phrase of a response status line such as
// "404 Not Found", falling back to the standard text for the code.
func statusText(statusCode int, status string) string {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(statusCode)))
	if text != "" {
		return text
	}
	return http.StatusText(statusCode)
}

// readErrorMessage consumes resp.Body and runs it through ExtractErrorMessage.
// A body that cannot be read is treated as empty.
func readErrorMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		body = nil
	}
	return ExtractErrorMessage(body, resp.StatusCode, resp.Status)
}
