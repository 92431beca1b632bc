package logger

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader is the header carrying the request ID to the API
const RequestIDHeader = "X-Request-ID"

// Transport is an http.RoundTripper that stamps every outgoing request with
// a request ID and logs its outcome.
type Transport struct {
	Base   http.RoundTripper
	Logger *zap.Logger
}

// NewTransport wraps base. A nil base means http.DefaultTransport.
func NewTransport(base http.RoundTripper, log *zap.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base, Logger: log}
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	requestID := GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
		ctx = WithRequestID(ctx, requestID)
	}

	// RoundTrippers must not modify the caller's request
	out := req.Clone(ctx)
	out.Header.Set(RequestIDHeader, requestID)

	log := WithContext(ctx, t.Logger)
	start := time.Now()

	resp, err := t.Base.RoundTrip(out)
	if err != nil {
		log.Warn("API request failed",
			zap.String("method", out.Method),
			zap.String("url", out.URL.String()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	log.Debug("API request completed",
		zap.String("method", out.Method),
		zap.String("url", out.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	return resp, nil
}
