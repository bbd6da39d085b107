package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerRecordsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantCode  int
		wantLevel zapcore.Level
	}{
		{
			name:      "implicit 200",
			handler:   func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) },
			wantCode:  http.StatusOK,
			wantLevel: zapcore.InfoLevel,
		},
		{
			name:      "empty handler",
			handler:   func(w http.ResponseWriter, r *http.Request) {},
			wantCode:  http.StatusOK,
			wantLevel: zapcore.InfoLevel,
		},
		{
			name:      "client error",
			handler:   func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			wantCode:  http.StatusNotFound,
			wantLevel: zapcore.InfoLevel,
		},
		{
			name:      "panic",
			handler:   func(w http.ResponseWriter, r *http.Request) { panic("boom") },
			wantCode:  http.StatusInternalServerError,
			wantLevel: zapcore.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.TakeAll()

			h := Logger(logger)(Recover(logger)(tt.handler))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events?x=1", nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}

			entries := logs.FilterMessage("HTTP request").AllUntimed()
			if len(entries) != 1 {
				t.Fatalf("got %d request log lines, want 1", len(entries))
			}
			entry := entries[0]
			if entry.Level != tt.wantLevel {
				t.Errorf("level = %v, want %v", entry.Level, tt.wantLevel)
			}
			fields := entry.ContextMap()
			if fields["status"] != int64(tt.wantCode) {
				t.Errorf("status field = %v, want %d", fields["status"], tt.wantCode)
			}
			if fields["query"] != "x=1" {
				t.Errorf("query field = %v", fields["query"])
			}
		})
	}
}

func TestRecoverRethrowsAbort(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if got := recover(); got != http.ErrAbortHandler {
			t.Fatalf("recovered %v, want http.ErrAbortHandler", got)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
