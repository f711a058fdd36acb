package log

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
)

type recordingHandler struct {
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func recordAttrs(r slog.Record) map[string]any {
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})
	return attrs
}

func TestLogHTTPEndLevels(t *testing.T) {
	cases := []struct {
		status int
		want   slog.Level
	}{
		{200, slog.LevelInfo},
		{404, slog.LevelWarn},
		{422, slog.LevelWarn},
		{500, slog.LevelError},
		{503, slog.LevelError},
	}

	for _, tc := range cases {
		h := &recordingHandler{}
		sl := NewStructuredLogger(New(Config{Handler: h}))

		req := httptest.NewRequest("GET", "/api/report?from=2024-03-01", nil)
		sl.LogHTTPEnd(context.Background(), req, tc.status, 12, "203.0.113.9", "req_test")

		if len(h.records) != 1 {
			t.Fatalf("status %d: got %d records, want 1", tc.status, len(h.records))
		}
		rec := h.records[0]
		if rec.Level != tc.want {
			t.Errorf("status %d: got level %v, want %v", tc.status, rec.Level, tc.want)
		}

		attrs := recordAttrs(rec)
		if attrs[FieldStatusCode] != int64(tc.status) {
			t.Errorf("status %d: status_code attr = %v", tc.status, attrs[FieldStatusCode])
		}
		if attrs[FieldRequestID] != "req_test" {
			t.Errorf("status %d: request_id attr = %v", tc.status, attrs[FieldRequestID])
		}
		if attrs[FieldSuccess] != (tc.status < 400) {
			t.Errorf("status %d: success attr = %v", tc.status, attrs[FieldSuccess])
		}
	}
}

func TestLogHTTPStartFields(t *testing.T) {
	h := &recordingHandler{}
	sl := NewStructuredLogger(New(Config{Handler: h}))

	req := httptest.NewRequest("POST", "/api/transactions", nil)
	sl.LogHTTPStart(context.Background(), req, "203.0.113.9", "req_start")

	if len(h.records) != 1 {
		t.Fatalf("got %d records, want 1", len(h.records))
	}
	rec := h.records[0]
	if rec.Message != "HTTP request started" {
		t.Errorf("message: got %q", rec.Message)
	}

	attrs := recordAttrs(rec)
	if attrs[FieldMethod] != "POST" {
		t.Errorf("method attr = %v", attrs[FieldMethod])
	}
	if attrs[FieldPath] != "/api/transactions" {
		t.Errorf("path attr = %v", attrs[FieldPath])
	}
	if attrs[FieldClientIP] != "203.0.113.9" {
		t.Errorf("client_ip attr = %v", attrs[FieldClientIP])
	}
	if attrs[FieldComponent] != ComponentHTTP {
		t.Errorf("component attr = %v", attrs[FieldComponent])
	}
}
